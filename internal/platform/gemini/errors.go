package gemini

import "errors"

var (
	// ErrInvalidConfig is returned when the provider cannot be constructed
	// from the given configuration.
	ErrInvalidConfig = errors.New("invalid gemini configuration")

	// ErrContentBlocked is returned when the response was withheld by
	// safety filters.
	ErrContentBlocked = errors.New("content blocked by safety filters")

	// ErrInvalidResponse is returned for responses without usable candidates.
	ErrInvalidResponse = errors.New("invalid response from gemini")

	// ErrTransientFailure is returned when retries are exhausted.
	ErrTransientFailure = errors.New("transient gemini failure")
)
