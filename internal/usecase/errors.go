package usecase

import (
	"errors"

	"github.com/google/uuid"
)

// Sentinel errors for the outcomes handlers are allowed to distinguish.
// Anything else surfaces as a generic internal error.
var (
	// ErrInvalidCredentials covers unknown email, OAuth-only accounts and
	// wrong passwords alike, so responses cannot be used to enumerate
	// accounts.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrEmailNotVerified is deliberately distinct from
	// ErrInvalidCredentials: the caller proved the password, so telling
	// them to verify is actionable, not a leak.
	ErrEmailNotVerified = errors.New("email not verified")

	ErrAlreadyVerified = errors.New("email already verified")
	ErrNotFound        = errors.New("user not found")
	ErrOTPNotFound     = errors.New("no verification code requested")
	ErrOTPMismatch     = errors.New("verification code mismatch")
	ErrOTPExpired      = errors.New("verification code expired")
	ErrUnauthorized    = errors.New("unauthorized")
)

// AlreadyExistsError is returned by sign-up when the email belongs to a
// verified account. It carries the account id so the client can offer the
// account-reset flow.
type AlreadyExistsError struct {
	UserID uuid.UUID
}

func (e *AlreadyExistsError) Error() string {
	return "user already exists"
}
