package service

import (
	"errors"
	"fmt"

	"go-smart-inventory/pkg/validator"
)

// ErrValidation marks input that failed schema validation.
var ErrValidation = errors.New("validation failed")

func validateInput(data interface{}) error {
	if errs := validator.ValidateStruct(data); len(errs) > 0 {
		first := errs[0]
		return fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, first.FailedField, first.Tag)
	}
	return nil
}
