package validation

import (
	"strings"

	"github.com/Daskott/contactbook/server/models"
)

var (
	phoneNumberTypeRule  = "oneof=" + strings.Join(models.PhoneNumberTypes, " ")
	emailAddressTypeRule = "oneof=" + strings.Join(models.EmailAddressTypes, " ")
)

// FullContactSchema validates contact creation & full updates
var FullContactSchema = Schema{Fields: []FieldRule{
	{Name: "first_name", Required: true, Rule: "max=200"},
	{Name: "last_name", Required: true, Rule: "max=200"},
	{Name: "middle_name", AllowBlank: true, Rule: "max=200"},
	{Name: "nickname", AllowBlank: true, Rule: "max=100"},
	{Name: "designation", AllowBlank: true, Rule: "max=200"},
	{Name: "company", AllowBlank: true, Rule: "max=255"},
	{Name: "email_address", Required: true, Rule: "max=255,email"},
	{Name: "email_type", Required: true, Rule: emailAddressTypeRule},
	{Name: "phone_number", Rule: "max=50"},
	{Name: "phone_number_type", Default: models.OTHER_TYPE, Rule: phoneNumberTypeRule},
}}

// PartialContactSchema validates partial updates of a contact's basic info
var PartialContactSchema = Schema{Fields: []FieldRule{
	{Name: "first_name", Rule: "max=200"},
	{Name: "last_name", Rule: "max=200"},
	{Name: "middle_name", AllowBlank: true, Rule: "max=200"},
	{Name: "nickname", AllowBlank: true, Rule: "max=100"},
	{Name: "designation", AllowBlank: true, Rule: "max=200"},
	{Name: "company", AllowBlank: true, Rule: "max=255"},
}}

// RegisterSchema caps passwords at the 72 bytes bcrypt can hash
var RegisterSchema = Schema{Fields: []FieldRule{
	{Name: "email", Required: true, Rule: "max=254,email"},
	{Name: "password", Required: true, KeepWhitespace: true, Rule: "min=8,maxbytes=72"},
}}

var LoginSchema = Schema{Fields: []FieldRule{
	{Name: "email", Required: true, Rule: "max=254,email"},
	{Name: "password", Required: true, KeepWhitespace: true, Rule: "min=8"},
}}

// ContactFields converts validated values into model input
func ContactFields(values map[string]string) models.ContactFields {
	return models.ContactFields{
		FirstName:       values["first_name"],
		MiddleName:      values["middle_name"],
		LastName:        values["last_name"],
		Nickname:        values["nickname"],
		Designation:     values["designation"],
		Company:         values["company"],
		PhoneNumber:     values["phone_number"],
		PhoneNumberType: values["phone_number_type"],
		EmailAddress:    values["email_address"],
		EmailType:       values["email_type"],
	}
}
