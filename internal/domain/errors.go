package domain

import "errors"

// Grading errors. Callers match them with errors.Is.
var (
	// ErrMissingDocument is returned when a grading request lacks either the
	// student document or the reference document.
	ErrMissingDocument = errors.New("student and reference documents are both required")

	// ErrPairCountMismatch is returned when the student and reference
	// sequences cannot be aligned positionally.
	ErrPairCountMismatch = errors.New("student and reference question counts differ")

	// ErrNoQuestions is returned when neither document yields any question.
	ErrNoQuestions = errors.New("no questions found in documents")
)
