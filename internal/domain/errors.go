// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Entity-specific errors wrap it so callers can match either.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// FieldError is an entity-specific validation failure. Its message is safe
// to show to clients. It matches ErrValidation under errors.Is.
type FieldError struct {
	msg string
}

func validationError(msg string) error {
	return &FieldError{msg: msg}
}

func (e *FieldError) Error() string { return e.msg }

func (e *FieldError) Unwrap() error { return ErrValidation }
