package mocks

import (
	"context"
	"sync"
)

// MockEmbedder implements scoring.Embedder for testing.
//
// Lookup order: EmbedFn, then Vectors[text], then Vector.
type MockEmbedder struct {
	// EmbedFn allows test cases to mock the Embed behavior
	EmbedFn func(ctx context.Context, text string) ([]float32, error)

	// Vectors maps exact input texts to fixed embeddings
	Vectors map[string][]float32

	// Default response values
	Vector []float32
	Err    error

	mu    sync.Mutex
	texts []string
}

// Embed implements the scoring.Embedder interface
func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.texts = append(m.texts, text)
	m.mu.Unlock()

	if m.EmbedFn != nil {
		return m.EmbedFn(ctx, text)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if v, ok := m.Vectors[text]; ok {
		return v, nil
	}
	return m.Vector, nil
}

// Texts returns a copy of every text passed to Embed, in call order.
func (m *MockEmbedder) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.texts))
	copy(out, m.texts)
	return out
}

// NewMockEmbedderWithVector creates a MockEmbedder returning v for every text,
// so every pair of texts is perfectly similar
func NewMockEmbedderWithVector(v []float32) *MockEmbedder {
	return &MockEmbedder{Vector: v}
}

// NewMockEmbedderWithError creates a MockEmbedder that always fails
func NewMockEmbedderWithError(err error) *MockEmbedder {
	return &MockEmbedder{Err: err}
}
