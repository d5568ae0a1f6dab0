package grading

import (
	"errors"
	"fmt"
)

var (
	// ErrExtractionFailed indicates a document was accepted but its text
	// could not be read (corrupt file, OCR failure).
	ErrExtractionFailed = errors.New("failed to extract document text")

	// ErrUploadFailed indicates an upload could not be staged on disk.
	ErrUploadFailed = errors.New("failed to store uploaded document")
)

// DocumentError identifies which document of a request an error relates to.
type DocumentError struct {
	// Role is "student" or "reference"
	Role string
	Err  error
}

// Error implements the error interface.
func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s document: %v", e.Role, e.Err)
}

// Unwrap returns the underlying error.
func (e *DocumentError) Unwrap() error {
	return e.Err
}

func documentError(role string, err error) error {
	return &DocumentError{Role: role, Err: err}
}
