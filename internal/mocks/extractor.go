package mocks

import (
	"context"
	"sync"
)

// MockExtractor implements document.Extractor for testing.
//
// Lookup order: ExtractFn, then Texts[path], then Text.
type MockExtractor struct {
	ExtractFn func(ctx context.Context, path string) (string, error)

	// Texts maps paths to extracted text
	Texts map[string]string

	// Default response values
	Text string
	Err  error

	mu    sync.Mutex
	paths []string
}

// Extract implements the document.Extractor interface
func (m *MockExtractor) Extract(ctx context.Context, path string) (string, error) {
	m.mu.Lock()
	m.paths = append(m.paths, path)
	m.mu.Unlock()

	if m.ExtractFn != nil {
		return m.ExtractFn(ctx, path)
	}
	if m.Err != nil {
		return "", m.Err
	}
	if text, ok := m.Texts[path]; ok {
		return text, nil
	}
	return m.Text, nil
}

// Paths returns a copy of every path passed to Extract, in call order.
func (m *MockExtractor) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.paths))
	copy(out, m.paths)
	return out
}
