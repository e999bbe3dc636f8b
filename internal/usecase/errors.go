package usecase

import (
	"errors"
	"fmt"

	"bizportal/pkg/utils"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrAccountExists      = errors.New("account already exists")
	ErrRoleQuotaExceeded  = errors.New("role quota exceeded")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoPendingLogin     = errors.New("no pending login")
	ErrInvalidCode        = errors.New("invalid MFA code")
	ErrNotFound           = errors.New("not found")
)

func validate(req interface{}) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}
	return nil
}
