// Package gemini provides grading capabilities backed by Google's Gemini API.
//
// This package is an infrastructure adapter: it connects the scoring engine's
// GrammarChecker and Embedder interfaces to the external Gemini service
// without exposing the details of the service to the rest of the application.
//
// Key components:
//
// 1. GrammarChecker:
//   - Renders a prompt from a text/template file
//   - Requests a JSON list of issues constrained by a response schema
//   - Reports the number of issues found
//
// 2. Embedder:
//   - Calls the embedding endpoint with the semantic-similarity task type
//   - Rate limits requests with golang.org/x/time/rate
//
// 3. Error Handling:
//   - Retries transient errors with exponential backoff and jitter
//   - Treats safety blocks and malformed responses as permanent
//
// The package uses the google.golang.org/genai client library.
package gemini
