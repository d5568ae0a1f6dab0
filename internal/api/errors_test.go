package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/exam-checker/internal/document"
	"github.com/phrazzld/exam-checker/internal/domain"
	"github.com/phrazzld/exam-checker/internal/domain/scoring"
	"github.com/phrazzld/exam-checker/internal/service/auth"
	"github.com/phrazzld/exam-checker/internal/service/grading"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"nil error", nil, http.StatusInternalServerError},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"wrapped expired token", fmt.Errorf("authenticate: %w", auth.ErrExpiredToken), http.StatusUnauthorized},
		{"body too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{"missing document", domain.ErrMissingDocument, http.StatusBadRequest},
		{"pair mismatch", domain.ErrPairCountMismatch, http.StatusBadRequest},
		{"no questions", domain.ErrNoQuestions, http.StatusBadRequest},
		{
			"unsupported format",
			&grading.DocumentError{Role: "student", Err: document.ErrUnsupportedFormat},
			http.StatusBadRequest,
		},
		{"capability failure", fmt.Errorf("question 3: %w", scoring.ErrCapabilityFailure), http.StatusBadGateway},
		{
			"render failure inside extraction",
			fmt.Errorf("%w: %w", grading.ErrExtractionFailed, document.ErrRenderFailed),
			http.StatusBadGateway,
		},
		{"extraction failure", grading.ErrExtractionFailed, http.StatusUnprocessableEntity},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expectedStatus, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, "An unexpected error occurred"},
		{"expired token", auth.ErrExpiredToken, "Token expired"},
		{"invalid token", auth.ErrInvalidToken, "Invalid token"},
		{"missing document", domain.ErrMissingDocument, "Both student and ideal answer PDFs are required."},
		{
			"pair mismatch",
			fmt.Errorf("align: %w", domain.ErrPairCountMismatch),
			"Mismatch in number of questions between student and ideal PDFs.",
		},
		{"unsupported without role", document.ErrUnsupportedFormat, "Unsupported uploaded document format."},
		{"body too large", &http.MaxBytesError{Limit: 2048}, "Uploaded documents exceed the 2048 byte limit."},
		{
			"unknown error does not leak",
			errors.New("open /srv/uploads/student_1.pdf: permission denied"),
			"An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestHandleAPIError_Fallback(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	HandleAPIError(rr, httptest.NewRequest(http.MethodPost, "/evaluate", nil), errors.New("boom"), "Failed to grade answers")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Failed to grade answers", decodeError(t, rr).Error)

	rr = httptest.NewRecorder()
	HandleAPIError(rr, httptest.NewRequest(http.MethodPost, "/evaluate", nil), domain.ErrNoQuestions, "Failed to grade answers")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "No questions were found in the uploaded documents.", decodeError(t, rr).Error)
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := errors.New("Key: 'ManualRequest.Answers[2]' Error:Field validation for 'Answers[2]' failed on the 'max' tag")
	assert.Equal(t, "Invalid Answers[2]: too long", SanitizeValidationError(err))
	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}

func TestParseHandwritten(t *testing.T) {
	t.Parallel()

	for value, want := range map[string]bool{
		"true": true, "TRUE": true, "True": true,
		"false": false, "": false, "1": false, "yes": false, " true": false,
	} {
		assert.Equal(t, want, parseHandwritten(value), "value %q", value)
	}
}
