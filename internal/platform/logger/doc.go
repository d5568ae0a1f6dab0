// Package logger sets up the JSON slog handler used by the server and the
// CLI, and carries request-scoped loggers through context.Context so that
// handlers and services log with the caller's trace ID.
package logger
