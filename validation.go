package main

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// requestValidator checks request bodies against their validate tags and
// reports failing fields by their label tag.
type requestValidator struct {
	v *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return &requestValidator{v: v}
}

// fieldFailure is one failing field and the rule it broke.
type fieldFailure struct {
	Field string
	Rule  string
}

// check validates s and returns the failing fields in declaration order.
func (rv *requestValidator) check(s any) ([]fieldFailure, error) {
	err := rv.v.Struct(s)
	if err == nil {
		return nil, nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil, err
	}

	failures := make([]fieldFailure, 0, len(validationErrs))
	for _, e := range validationErrs {
		failures = append(failures, fieldFailure{Field: e.Field(), Rule: e.Tag()})
	}
	return failures, nil
}

// missingFieldsError reports every missing field in one message.
func missingFieldsError(failures []fieldFailure) *apiError {
	names := make([]string, len(failures))
	for i, f := range failures {
		names[i] = f.Field
	}
	return validationError("The following required fields are missing: " + strings.Join(names, ", ") + ".")
}
