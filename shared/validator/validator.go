package validator

import (
	"encoding/json"
	"fmt"
	"io"

	"pms/shared/failure"
	"pms/shared/timezone"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

// registerCalendarDateValidation accepts YYYY-MM-DD strings only.
func registerCalendarDateValidation(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := timezone.ParseDate(value)

	return err == nil
}

// registerAsOfValidation accepts an RFC3339 instant or a calendar date.
func registerAsOfValidation(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok || value == "" {
		return false
	}

	_, err := timezone.ParseAsOf(value)

	return err == nil
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonName)

	if err := validate.RegisterValidation("calendardate", registerCalendarDateValidation); err != nil {
		panic(err)
	}

	if err := validate.RegisterValidation("asof", registerAsOfValidation); err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return toFailure(err)
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return varFailure(err)
	}

	return nil
}
