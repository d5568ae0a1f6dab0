package shared

import (
	"context"
	"encoding/hex"

	"github.com/google/uuid"
)

// ContextKey namespaces request-scoped values set by the API layer.
type ContextKey string

const (
	// SubjectContextKey holds the sub claim of a validated bearer token.
	SubjectContextKey ContextKey = "subject"

	// TraceIDKey holds the identifier echoed in error bodies and log lines.
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the trace ID size in bytes. IDs are hex encoded.
	TraceIDLength = 16
)

// SetTraceID returns a copy of ctx carrying a new trace ID.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, newTraceID())
}

// GetTraceID returns the trace ID stored in ctx, or "" when there is none.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// newTraceID encodes a random UUID without separators.
func newTraceID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}
