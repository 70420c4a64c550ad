// Package validation checks request payloads and quiz answers.
package validation

import (
	"github.com/go-playground/validator/v10"
)

// Validator adapts go-playground/validator to echo's Validator interface
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator for struct tags
func NewValidator() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate validates a struct using its `validate` tags
func (v *Validator) Validate(i any) error {
	return v.validate.Struct(i)
}
