package scoring

import "errors"

// Common errors
var (
	// ErrNilGrammarChecker is returned when an engine is built without a grammar checker.
	ErrNilGrammarChecker = errors.New("grammar checker cannot be nil")

	// ErrNilEmbedder is returned when an engine is built without an embedder.
	ErrNilEmbedder = errors.New("embedder cannot be nil")

	// ErrCapabilityFailure wraps any failure of the grammar or embedding capability.
	ErrCapabilityFailure = errors.New("scoring capability failed")

	// ErrDimensionMismatch is returned when two embeddings have different lengths.
	ErrDimensionMismatch = errors.New("embedding dimensions differ")
)
