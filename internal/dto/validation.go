package dto

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	pinPattern           = regexp.MustCompile(`^\d{4}$`)
	accountNumberPattern = regexp.MustCompile(`^\d{3}-\d{3}-\d{6}$`)
)

// fieldReasons maps validation tags to the reason reported back to clients.
var fieldReasons = map[string]string{
	"required":       "is required",
	"pin":            "must be exactly 4 digits",
	"account_number": "must match PPP-DDD-DDDDDD",
	"whole":          "must not have a fractional part",
}

// RegisterValidators installs the request validation tags used by this package on v.
// Field names in errors are reported by their JSON name.
func RegisterValidators(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("pin", func(fl validator.FieldLevel) bool {
		return pinPattern.MatchString(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("failed to register 'pin': %w", err)
	}

	if err := v.RegisterValidation("account_number", func(fl validator.FieldLevel) bool {
		return accountNumberPattern.MatchString(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("failed to register 'account_number': %w", err)
	}

	if err := v.RegisterValidation("whole", func(fl validator.FieldLevel) bool {
		var d decimal.Decimal
		switch value := fl.Field().Interface().(type) {
		case decimal.Decimal:
			d = value
		case *decimal.Decimal:
			if value == nil {
				return true
			}
			d = *value
		default:
			return false
		}
		return d.Equal(d.Truncate(0))
	}); err != nil {
		return fmt.Errorf("failed to register 'whole': %w", err)
	}

	return nil
}

// ToFieldErrors flattens a validator error into per-field reasons. Errors that are not
// validation errors (malformed JSON, wrong types) come back as a single "body" entry.
func ToFieldErrors(err error) []FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []FieldError{{Field: "body", Reason: "malformed request body"}}
	}

	fields := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		reason, ok := fieldReasons[fe.Tag()]
		if !ok {
			reason = "failed on the '" + fe.Tag() + "' rule"
		}
		fields = append(fields, FieldError{Field: fe.Field(), Reason: reason})
	}
	return fields
}
