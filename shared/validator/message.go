package validator

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"pms/shared/failure"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required": "{field} is required",
	"gte":      "{field} must be greater than or equal to {param}",
	"lte":      "{field} must be less than or equal to {param}",
	"oneof":    "{field} must be one of {param}",
	"max":      "{field} must be less than or equal to {param}",
	"min":      "{field} must be greater than or equal to {param}",
	"uuid":     "{field} must be a valid UUID",

	"calendardate": "{field} must be a calendar date in YYYY-MM-DD format",
	"asof":         "{field} must be an RFC3339 timestamp or a YYYY-MM-DD date",
}

// jsonName reports fields by the name clients send them under.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	if name == "" {
		return field.Name
	}

	return name
}

func describe(fieldErr val.FieldError) string {
	template, ok := messages[fieldErr.Tag()]
	if !ok {
		return fieldErr.Field() + " failed the " + fieldErr.Tag() + " check"
	}

	return strings.NewReplacer("{field}", fieldErr.Field(), "{param}", fieldErr.Param()).Replace(template)
}

// toFailure turns validation errors into a 400 whose message is the first problem and
// whose details map every offending field to its problem.
func toFailure(err error) error {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) || len(valErrors) == 0 {
		return failure.BadRequest(err)
	}

	details := make(map[string]any, len(valErrors))
	for _, fieldErr := range valErrors {
		key := fieldErr.Field()
		if _, seen := details[key]; !seen {
			details[key] = describe(fieldErr)
		}
	}

	return failure.New(http.StatusBadRequest, describe(valErrors[0])).WithDetails(details)
}

// varFailure is toFailure for a lone value, which has no field name to report.
func varFailure(err error) error {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) || len(valErrors) == 0 {
		return failure.BadRequest(err)
	}

	return failure.BadRequestFromString(strings.TrimSpace(describe(valErrors[0])))
}
