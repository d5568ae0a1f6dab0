// Package scoring implements the answer rubric.
//
// An answer earns up to 4 points for keyword coverage, 3 for grammar and 3
// for semantic similarity to the model answer. The pure functions in
// algorithm.go compute each dimension; Engine combines them using an
// injected GrammarChecker and Embedder.
package scoring
