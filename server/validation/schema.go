package validation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator"
)

const (
	REQUIRED_MSG     = "This field is required."
	BLANK_MSG        = "This field may not be blank."
	NULL_MSG         = "This field may not be null."
	INVALID_TYPE_MSG = "Not a valid string."
)

var validate = newValidator()

// FieldRule describes one string field of a request body. Rule is a validator
// tag applied to non-blank values.
type FieldRule struct {
	Name           string
	Required       bool
	AllowBlank     bool
	KeepWhitespace bool
	Default        string
	Rule           string
}

type Schema struct {
	Fields []FieldRule
}

// Errors maps a field name to its validation messages
type Errors map[string][]string

func (errs Errors) Add(field, message string) {
	errs[field] = append(errs[field], message)
}

func (errs Errors) Error() string {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(errs[field], " ")))
	}
	return strings.Join(parts, "; ")
}

// Validate checks 'data' against the schema. It returns the accepted values keyed by
// field name, fields absent from 'data' are left out unless they carry a default.
// Keys not named by the schema are ignored. A nil Errors means the data is valid,
// otherwise the returned values only hold the fields that passed.
func (schema Schema) Validate(data map[string]interface{}) (map[string]string, Errors) {
	values := map[string]string{}
	errs := Errors{}

	for _, field := range schema.Fields {
		raw, present := data[field.Name]
		if !present {
			if field.Required {
				errs.Add(field.Name, REQUIRED_MSG)
			} else if field.Default != "" {
				values[field.Name] = field.Default
			}
			continue
		}

		if raw == nil {
			errs.Add(field.Name, NULL_MSG)
			continue
		}

		value, ok := stringValue(raw)
		if !ok {
			errs.Add(field.Name, INVALID_TYPE_MSG)
			continue
		}
		if !field.KeepWhitespace {
			value = strings.TrimSpace(value)
		}

		if value == "" {
			if field.AllowBlank {
				values[field.Name] = ""
			} else {
				errs.Add(field.Name, BLANK_MSG)
			}
			continue
		}

		if field.Rule != "" {
			if err := validate.Var(value, field.Rule); err != nil {
				errs.Add(field.Name, message(err, value))
				continue
			}
		}

		values[field.Name] = value
	}

	if len(errs) > 0 {
		return values, errs
	}
	return values, nil
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

// newValidator adds 'maxbytes', a length check on the encoded size of a string
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	})
	return v
}

// stringValue accepts strings & numbers, numbers are rendered in their shortest form
func stringValue(raw interface{}) (string, bool) {
	switch value := raw.(type) {
	case string:
		return value, true
	case json.Number:
		return value.String(), true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	case int:
		return strconv.Itoa(value), true
	default:
		return "", false
	}
}

func message(err error, value string) string {
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrors) == 0 {
		return "Invalid value."
	}

	fieldError := fieldErrors[0]
	switch fieldError.Tag() {
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fieldError.Param())
	case "maxbytes":
		return fmt.Sprintf("Ensure this field has no more than %s bytes.", fieldError.Param())
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fieldError.Param())
	case "email":
		return "Enter a valid email address."
	case "oneof":
		return fmt.Sprintf("\"%s\" is not a valid choice.", value)
	default:
		return "Invalid value."
	}
}
