package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	errRequired       = errors.New("is required")
	errPainLevelRange = errors.New("must be between 1 and 10")
	errLabelTooLong   = errors.New("must be at most 80 characters")
	errNotesTooLong   = errors.New("must be at most 4000 characters")
	errEndBeforeStart = errors.New("must not be before start_time")
)

var fieldErrors = map[string]error{
	"logPayload.PainLevel.min":        errPainLevelRange,
	"logPayload.PainLevel.max":        errPainLevelRange,
	"logPayload.Triggers.required":    errRequired,
	"logPayload.Triggers.max":         errLabelTooLong,
	"logPayload.MedicationsTaken.max": errLabelTooLong,
	"logPayload.ReliefMethods.max":    errLabelTooLong,
	"logPayload.Notes.max":            errNotesTooLong,
	"optionPayload.Name.required":     errRequired,
	"optionPayload.Name.max":          errLabelTooLong,
}

// newValidator reports fields under their JSON names.
func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// validationFields turns validator errors into a JSON-name -> message map.
// It returns nil when err is not a validation error.
func validationFields(err error) map[string]string {
	var validationErr validator.ValidationErrors
	if !errors.As(err, &validationErr) {
		return nil
	}

	fields := make(map[string]string, len(validationErr))
	for _, fieldErr := range validationErr {
		key := stripIndex(fieldErr.StructNamespace()) + "." + fieldErr.Tag()
		message := fmt.Sprintf("failed %s validation", fieldErr.Tag())
		if known, ok := fieldErrors[key]; ok {
			message = known.Error()
		} else if fieldErr.Tag() == "required" {
			message = errRequired.Error()
		}
		fields[fieldErr.Field()] = message
	}
	return fields
}

// stripIndex drops a trailing slice index so every element of a list shares
// one message key.
func stripIndex(namespace string) string {
	if index := strings.LastIndex(namespace, "["); index >= 0 && strings.HasSuffix(namespace, "]") {
		return namespace[:index]
	}
	return namespace
}
