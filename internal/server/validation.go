package server

import (
	"errors"

	"keypub/internal/validation"
)

// validationFailure maps a validation error onto a 400 with a field-specific code.
func validationFailure(err error) error {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return invalid(err, ErrCodeInvalidArgument)
	}

	code := ErrCodeInvalidArgument
	switch {
	case errors.Is(err, validation.ErrEmpty):
		code = ErrCodeMissingRequired
	case errors.Is(err, validation.ErrInvalidID):
		code = ErrCodeInvalidID
	case verr.Field == "public_key":
		code = ErrCodeInvalidPublicKey
	case verr.Field == "note":
		code = ErrCodeInvalidNote
	}
	return invalid(err, code)
}
