// Package validator wraps go-playground/validator so structs can be checked
// through their `validate` tags and failures come back as a standard error chain.
//
// The first error of a failed validation is always ErrValidationFailed,
// followed by one *FieldError per violated rule.
package validator

import (
	"errors"
	"fmt"

	gvalidator "github.com/go-playground/validator/v10"
)

// ErrValidationFailed is returned as the first error in a multi-error chain when validation fails.
var ErrValidationFailed = errors.New("struct validation failed")

// validator is a singleton instance of the go-playground validator,
// initialized automatically on package load.
var validator *gvalidator.Validate

func init() {
	validator = gvalidator.New(gvalidator.WithRequiredStructEnabled())
}

// FieldError describes one violated rule.
type FieldError struct {
	Field string // struct field name
	Tag   string // failed validation tag, e.g. "eth_addr"
	Value any    // offending value
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("'%s': value '%v' does not meet the requirements for the '%s' validation", e.Field, e.Value, e.Tag)
}

// formatError turns validator errors into ErrValidationFailed joined with one
// *FieldError per violation. Any other error is returned unchanged.
func formatError(err error) error {
	var validationErrors gvalidator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	errs := []error{ErrValidationFailed}
	for _, validationErr := range validationErrors {
		errs = append(errs, &FieldError{
			Field: validationErr.Field(),
			Tag:   validationErr.Tag(),
			Value: validationErr.Value(),
		})
	}

	return errors.Join(errs...)
}

// Validate checks if the given struct satisfies its validation tags.
//
//	if err := validator.Validate(q); errors.Is(err, validator.ErrValidationFailed) {
//	    // inspect validator.FailedFields(err)
//	}
func Validate(v any) error {
	if err := validator.Struct(v); err != nil {
		return formatError(err)
	}

	return nil
}

// FailedFields lists the struct fields named by the *FieldError values in err,
// in the order the validator reported them.
func FailedFields(err error) []string {
	var fields []string

	var walk func(error)
	walk = func(err error) {
		if err == nil {
			return
		}
		if fe, ok := err.(*FieldError); ok {
			fields = append(fields, fe.Field)
			return
		}
		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			for _, e := range u.Unwrap() {
				walk(e)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)

	return fields
}
