package domain

import "fmt"

// GradingSession pairs a student's answers with the reference answers by
// position: Student[i] is graded against Reference[i]. A session only exists
// for sequences of equal length and holds no state beyond the two slices.
type GradingSession struct {
	Student   []QAPair
	Reference []ReferenceQAPair
}

// NewGradingSession aligns the two sequences. It returns ErrPairCountMismatch
// when their lengths differ and ErrNoQuestions when both are empty.
func NewGradingSession(student []QAPair, reference []ReferenceQAPair) (*GradingSession, error) {
	if len(student) != len(reference) {
		return nil, fmt.Errorf("%w: %d student answers, %d reference answers",
			ErrPairCountMismatch, len(student), len(reference))
	}
	if len(student) == 0 {
		return nil, ErrNoQuestions
	}
	return &GradingSession{Student: student, Reference: reference}, nil
}

// Len returns the number of aligned pairs.
func (s *GradingSession) Len() int {
	return len(s.Student)
}
