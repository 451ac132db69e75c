// Package validation checks submission input with struct tags and reports every missing
// or malformed field in a single apperr.ErrValidation.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/corray333/backend-labs/booking/internal/service/apperr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}

		return name
	})

	return v
}

// Struct validates s against its validate tags.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperr.Validation("%v", err)
	}

	var missing, invalid []string
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			missing = append(missing, fieldPath(fe))
		} else {
			invalid = append(invalid, fieldPath(fe))
		}
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "Please fill in all required fields: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		parts = append(parts, "Please check the following fields: "+strings.Join(invalid, ", "))
	}

	return apperr.Validation("%s", strings.Join(parts, "; "))
}

// fieldPath drops the root struct name, e.g. "Request.customer.email" -> "customer.email".
func fieldPath(fe validator.FieldError) string {
	_, path, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}

	return path
}
