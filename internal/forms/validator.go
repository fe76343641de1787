package forms

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator adapts go-playground/validator to the echo.Validator
// interface. Field names in validation errors are taken from the form
// tag so they line up with template error keys.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// ErrorMessages flattens a validation error into per-field messages
// suitable for inline form display.
func ErrorMessages(err error) map[string]string {
	messages := make(map[string]string)
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		messages["form"] = "Please check your input and try again."
		return messages
	}
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			messages[fe.Field()] = "This field is required."
		case "email":
			messages[fe.Field()] = "Please enter a valid email address."
		case "min":
			messages[fe.Field()] = fmt.Sprintf("Must be at least %s characters.", fe.Param())
		case "max":
			messages[fe.Field()] = fmt.Sprintf("Must be at most %s characters.", fe.Param())
		case "datetime":
			messages[fe.Field()] = "Invalid date or time format."
		case "eqfield":
			messages[fe.Field()] = "Passwords do not match."
		default:
			messages[fe.Field()] = "Invalid value."
		}
	}
	return messages
}
