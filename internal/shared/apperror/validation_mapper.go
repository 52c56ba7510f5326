package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var camelBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)

// formatFieldName turns "baseSalary" or "base_salary" into "Base Salary".
func formatFieldName(s string) string {
	s = camelBoundary.ReplaceAllString(s, "$1 $2")
	s = strings.ReplaceAll(s, "_", " ")

	caser := cases.Title(language.English)
	return caser.String(s)
}

func fieldMessage(e validator.FieldError) string {
	name := formatFieldName(e.Field())
	switch e.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " must be a valid email address"
	case "min", "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", name, e.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", name, e.Param())
	default:
		return name + " is invalid"
	}
}

// MapValidationError converts a binding error into a 400 AppError whose
// details list every offending field.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		fields := make([]FieldError, 0, len(errs))
		for _, e := range errs {
			fields = append(fields, FieldError{Field: e.Field(), Message: fieldMessage(e)})
		}

		first := errs[0]
		var head *AppError
		if first.Tag() == "required" {
			head = RequiredField(formatFieldName(first.Field()))
		} else {
			head = InvalidField(formatFieldName(first.Field()))
		}
		return head.WithDetails(fields)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return InvalidField(formatFieldName(typeErr.Field)).WithDetails([]FieldError{
			{Field: typeErr.Field, Message: fmt.Sprintf("%s must be a %s", formatFieldName(typeErr.Field), typeErr.Type.String())},
		})
	}

	return New(
		CodeValidation,
		"Invalid input",
		http.StatusBadRequest,
	)
}
