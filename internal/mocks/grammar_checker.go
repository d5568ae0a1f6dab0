package mocks

import (
	"context"
	"sync"
)

// MockGrammarChecker implements scoring.GrammarChecker for testing
type MockGrammarChecker struct {
	// CountIssuesFn allows test cases to mock the CountIssues behavior
	CountIssuesFn func(ctx context.Context, text string) (int, error)

	// Default response values
	Issues int
	Err    error

	// Call tracking for verification
	CountIssuesCalls struct {
		// mu protects the call tracking state for concurrent callers
		mu sync.Mutex

		// Count tracks how many times CountIssues was called
		Count int

		// Texts contains all texts passed to CountIssues calls
		Texts []string
	}
}

// CountIssues implements the scoring.GrammarChecker interface
func (m *MockGrammarChecker) CountIssues(ctx context.Context, text string) (int, error) {
	m.CountIssuesCalls.mu.Lock()
	m.CountIssuesCalls.Count++
	m.CountIssuesCalls.Texts = append(m.CountIssuesCalls.Texts, text)
	m.CountIssuesCalls.mu.Unlock()

	if m.CountIssuesFn != nil {
		return m.CountIssuesFn(ctx, text)
	}
	return m.Issues, m.Err
}

// Calls returns the number of CountIssues calls so far.
func (m *MockGrammarChecker) Calls() int {
	m.CountIssuesCalls.mu.Lock()
	defer m.CountIssuesCalls.mu.Unlock()
	return m.CountIssuesCalls.Count
}

// NewMockGrammarCheckerWithIssues creates a MockGrammarChecker that reports issues for every text
func NewMockGrammarCheckerWithIssues(issues int) *MockGrammarChecker {
	return &MockGrammarChecker{Issues: issues}
}

// NewMockGrammarCheckerWithError creates a MockGrammarChecker that always fails
func NewMockGrammarCheckerWithError(err error) *MockGrammarChecker {
	return &MockGrammarChecker{Err: err}
}
