package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullContactSchema(t *testing.T) {
	validData := func() map[string]interface{} {
		return map[string]interface{}{
			"first_name":    "Ann",
			"last_name":     "Lee",
			"email_address": "ann@x.com",
			"email_type":    "work",
		}
	}

	t.Run("valid with defaults", func(t *testing.T) {
		values, errs := FullContactSchema.Validate(validData())
		assert.Nil(t, errs)
		assert.Equal(t, "other", values["phone_number_type"], "Expected phone_number_type to default to 'other'")
		_, hasNickname := values["nickname"]
		assert.False(t, hasNickname)
	})

	tests := []struct {
		name     string
		field    string
		value    interface{}
		expected string
	}{
		{"missing first name", "first_name", nil, REQUIRED_MSG},
		{"blank first name", "first_name", "  ", BLANK_MSG},
		{"long last name", "last_name", strings.Repeat("a", 201), "Ensure this field has no more than 200 characters."},
		{"long nickname", "nickname", strings.Repeat("a", 101), "Ensure this field has no more than 100 characters."},
		{"invalid email", "email_address", "not-an-email", "Enter a valid email address."},
		{"invalid email type", "email_type", "mobile", "\"mobile\" is not a valid choice."},
		{"invalid phone type", "phone_number_type", "pager", "\"pager\" is not a valid choice."},
		{"blank phone number", "phone_number", "", BLANK_MSG},
		{"non string company", "company", true, INVALID_TYPE_MSG},
		{"null middle name", "middle_name", "null", NULL_MSG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := validData()
			switch {
			case tt.value == nil:
				delete(data, tt.field)
			case tt.value == "null":
				data[tt.field] = nil
			default:
				data[tt.field] = tt.value
			}

			_, errs := FullContactSchema.Validate(data)
			assert.Equal(t, []string{tt.expected}, errs[tt.field])
			assert.Len(t, errs, 1)
		})
	}

	t.Run("blank optional fields", func(t *testing.T) {
		data := validData()
		data["nickname"] = ""
		data["company"] = ""

		values, errs := FullContactSchema.Validate(data)
		assert.Nil(t, errs)
		assert.Equal(t, "", values["nickname"])
		assert.Contains(t, values, "company")
	})

	t.Run("numeric phone number", func(t *testing.T) {
		data := validData()
		data["phone_number"] = json.Number("5551234")

		values, errs := FullContactSchema.Validate(data)
		assert.Nil(t, errs)
		assert.Equal(t, "5551234", values["phone_number"])
	})

	t.Run("every missing required field is reported", func(t *testing.T) {
		_, errs := FullContactSchema.Validate(map[string]interface{}{})
		assert.ElementsMatch(t, []string{"first_name", "last_name", "email_address", "email_type"}, keys(errs))
	})
}

func TestPartialContactSchema(t *testing.T) {
	values, errs := PartialContactSchema.Validate(map[string]interface{}{
		"nickname":      "",
		"company":       "Acme",
		"email_address": "ignored@x.com",
		"unknown":       "ignored",
	})
	assert.Nil(t, errs)
	assert.Equal(t, map[string]string{"nickname": "", "company": "Acme"}, values)

	_, errs = PartialContactSchema.Validate(map[string]interface{}{"first_name": ""})
	assert.Equal(t, []string{BLANK_MSG}, errs["first_name"])
}

func TestRegisterSchema(t *testing.T) {
	values, errs := RegisterSchema.Validate(map[string]interface{}{"email": " a@x.com ", "password": " secret123"})
	assert.Nil(t, errs)
	assert.Equal(t, "a@x.com", values["email"])
	assert.Equal(t, " secret123", values["password"], "Expected password whitespace to be kept")

	values, errs = RegisterSchema.Validate(map[string]interface{}{"email": "a@x.com", "password": "short"})
	assert.Equal(t, []string{"Ensure this field has at least 8 characters."}, errs["password"])
	assert.Equal(t, "a@x.com", values["email"], "Expected valid fields to be returned alongside errors")

	for _, password := range []string{strings.Repeat("p", 73), strings.Repeat("é", 37)} {
		_, errs = RegisterSchema.Validate(map[string]interface{}{"email": "a@x.com", "password": password})
		assert.Equal(t, []string{"Ensure this field has no more than 72 bytes."}, errs["password"])
	}

	_, errs = RegisterSchema.Validate(map[string]interface{}{"email": "a@x.com", "password": strings.Repeat("é", 36)})
	assert.Nil(t, errs)
}

func TestErrors(t *testing.T) {
	errs := Errors{}
	errs.Add("password", "too short")
	errs.Add("email", "taken")

	assert.Equal(t, "email: taken; password: too short", errs.Error())
}

func keys(errs Errors) []string {
	fields := []string{}
	for field := range errs {
		fields = append(fields, field)
	}
	return fields
}
