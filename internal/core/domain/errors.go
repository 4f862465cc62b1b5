package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrWeakPassword = fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoSuchAccount      = fmt.Errorf("%w: no such account", ErrInvalidCredentials)
	ErrInvalidPassword    = fmt.Errorf("%w: password mismatch", ErrInvalidCredentials)

	ErrAccountNotActive = errors.New("account not active")
	ErrAccountPending   = fmt.Errorf("%w: pending approval", ErrAccountNotActive)
	ErrAccountInactive  = fmt.Errorf("%w: deactivated", ErrAccountNotActive)

	// ErrInvalidSession covers missing, malformed, forged and expired session tokens.
	ErrInvalidSession  = errors.New("invalid or expired session")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access forbidden")

	ErrNotFound        = errors.New("not found")
	ErrAccountNotFound = fmt.Errorf("account %w", ErrNotFound)
	ErrRequestNotFound = fmt.Errorf("request %w", ErrNotFound)

	ErrDuplicateEmail    = errors.New("email already registered")
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrSubmissionInFlight means another submission holds the same Idempotency-Key.
	ErrSubmissionInFlight = errors.New("a submission with this idempotency key is in progress")
)

// ValidationError describes a single rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError is a shorthand used by services for field-level failures.
func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// TransitionError reports the precondition a lifecycle action violated,
// e.g. "can only approve pending requests".
type TransitionError struct {
	Action  RequestAction
	From    RequestStatus
	Allowed []RequestStatus
}

func (e *TransitionError) Error() string {
	names := make([]string, len(e.Allowed))
	for i, s := range e.Allowed {
		names[i] = string(s)
	}
	return fmt.Sprintf("can only %s %s requests", e.Action, strings.Join(names, " or "))
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
