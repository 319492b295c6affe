package apperror

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// humanField turns a json field name into a label: leave_type -> Leave Type.
// Casers are stateful, so each call gets its own.
func humanField(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

// MapValidationError turns a binding failure into a single VALIDATION_ERROR
// describing the first offending field.
func MapValidationError(err error) *AppError {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return Wrap(err, CodeValidation, ErrValidation.Message, ErrValidation.HTTPStatus)
	}

	fe := errs[0]
	field := humanField(fe.Field())
	switch fe.Tag() {
	case "required":
		return RequiredField(field)
	case "email":
		return fieldMessage(field + " must be a valid email address")
	case "datetime":
		return fieldMessage(field + " must be a date in YYYY-MM-DD format")
	case "money":
		return fieldMessage(field + " must be a non-negative amount")
	case "max":
		return fieldMessage(field + " must be at most " + fe.Param() + " characters")
	default:
		return InvalidField(field)
	}
}

func fieldMessage(msg string) *AppError {
	return New(CodeValidation, msg, http.StatusBadRequest)
}
