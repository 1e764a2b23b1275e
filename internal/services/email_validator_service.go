package services

import (
	"context"
	"errors"
)

// LocalEmailValidator is the offline fallback: a format check only. The
// AbstractAPI reputation validator replaces it when an API key is configured.
type LocalEmailValidator struct{}

func NewLocalEmailValidator() *LocalEmailValidator {
	return &LocalEmailValidator{}
}

func (v *LocalEmailValidator) Validate(_ context.Context, email string) error {
	if !emailRegex.MatchString(email) {
		return errors.New("invalid email format")
	}
	return nil
}
