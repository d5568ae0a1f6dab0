package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/exam-checker/internal/api/shared"
	"github.com/phrazzld/exam-checker/internal/document"
	"github.com/phrazzld/exam-checker/internal/domain"
	"github.com/phrazzld/exam-checker/internal/domain/scoring"
	"github.com/phrazzld/exam-checker/internal/service/auth"
	"github.com/phrazzld/exam-checker/internal/service/grading"
)

// Client-facing messages kept compatible with the browser client.
const (
	msgMissingDocument = "Both student and ideal answer PDFs are required."
	msgPairMismatch    = "Mismatch in number of questions between student and ideal PDFs."
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var maxBytesErr *http.MaxBytesError

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge

	// Bad request errors
	case errors.Is(err, domain.ErrMissingDocument),
		errors.Is(err, domain.ErrPairCountMismatch),
		errors.Is(err, domain.ErrNoQuestions),
		errors.Is(err, document.ErrUnsupportedFormat):
		return http.StatusBadRequest

	// Upstream capability errors
	case errors.Is(err, scoring.ErrCapabilityFailure),
		errors.Is(err, document.ErrRenderFailed),
		errors.Is(err, document.ErrRecognitionFailed):
		return http.StatusBadGateway

	// Document accepted but unreadable
	case errors.Is(err, grading.ErrExtractionFailed):
		return http.StatusUnprocessableEntity

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.As(err, &maxBytesErr):
		return fmt.Sprintf("Uploaded documents exceed the %d byte limit.", maxBytesErr.Limit)

	case errors.Is(err, domain.ErrMissingDocument):
		return msgMissingDocument

	case errors.Is(err, domain.ErrPairCountMismatch):
		return msgPairMismatch

	case errors.Is(err, domain.ErrNoQuestions):
		return "No questions were found in the uploaded documents."

	case errors.Is(err, document.ErrUnsupportedFormat):
		return fmt.Sprintf("Unsupported %s document format.", documentRole(err))

	case errors.Is(err, scoring.ErrCapabilityFailure),
		errors.Is(err, document.ErrRenderFailed),
		errors.Is(err, document.ErrRecognitionFailed):
		return "A grading service is unavailable. Please try again later."

	case errors.Is(err, grading.ErrExtractionFailed):
		return fmt.Sprintf("Could not read text from the %s document.", documentRole(err))

	case errors.Is(err, context.DeadlineExceeded):
		return "Grading timed out"

	default:
		return "An unexpected error occurred"
	}
}

// documentRole names the document an error belongs to, or "uploaded".
func documentRole(err error) string {
	var docErr *grading.DocumentError
	if errors.As(err, &docErr) && docErr.Role != "" {
		return docErr.Role
	}
	return "uploaded"
}

// HandleAPIError writes the status and sanitized message for err. A
// non-empty fallbackMessage replaces the generic message for 500 responses.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallbackMessage != "" {
		message = fallbackMessage
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example format: "Key: 'ManualRequest.Answers[0]' Error:Field validation for 'Answers[0]' failed on the 'max' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
