// filepath: internal/services/validate.go
package services

import (
	"fmt"
	"strings"

	"teachermonitor/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError carries the full set of invalid fields of one form
// submission. No write happens while it is non-empty.
type ValidationError struct {
	Fields []models.FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return fmt.Sprintf("validation failed for fields: %s", strings.Join(names, ", "))
}

// checkStruct validates v and enumerates every failing field at once.
func checkStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make([]models.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, models.FieldError{
			Field:   fieldName(fe),
			Message: messageFor(fe),
		})
	}
	return &ValidationError{Fields: fields}
}

// fieldName reports the JSON-facing name of the failing field.
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	// Struct field names are exported; forms and API speak lowerCamel.
	return strings.ToLower(name[:1]) + name[1:]
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min", "max":
		return "must be between 1 and 5"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "number":
		return "must be a number"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
