package validate

import (
	"github.com/go-playground/validator/v10"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct validates tagged fields on a request payload.
func Struct(payload any) error {
	return v.Struct(payload)
}
