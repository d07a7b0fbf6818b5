package service

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks caller mistakes that are not domain validation
// failures, such as a missing request field.
var ErrInvalidInput = errors.New("invalid input")

// ServiceError adds operation context to an unexpected failure. Sentinel
// errors from the store and domain stay reachable through Unwrap.
type ServiceError struct {
	Service   string
	Operation string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s service %s failed: %v", e.Service, e.Operation, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

func wrap(service, operation string, err error) error {
	if err == nil {
		return nil
	}
	return &ServiceError{Service: service, Operation: operation, Err: err}
}
