package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrInvalidConfig is returned when a client is built from incomplete settings.
	ErrInvalidConfig = errors.New("invalid gemini configuration")

	// ErrInvalidResponse is returned when the API answers with something that
	// cannot be interpreted. It is not retried.
	ErrInvalidResponse = errors.New("invalid response from gemini")

	// ErrContentBlocked is returned when safety filters block the request.
	// It is not retried.
	ErrContentBlocked = errors.New("content blocked by gemini safety filters")

	// ErrTransientFailure is returned when retries are exhausted or the
	// context ends while waiting to retry.
	ErrTransientFailure = errors.New("transient gemini failure")
)
