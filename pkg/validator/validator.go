package validator

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator adapts go-playground/validator to echo's Validator
// interface so handlers can call c.Validate on bound request DTOs.
type CustomValidator struct {
	validate *validator.Validate
}

// New creates a CustomValidator with the default tag rules
func New() *CustomValidator {
	return &CustomValidator{validate: validator.New()}
}

// Validate runs struct-tag validation on i
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validate.Struct(i)
}
