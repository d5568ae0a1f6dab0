// Package redact provides utilities for redacting sensitive information from strings
// before they are logged or returned in error responses. It strips credentials,
// API keys (including Gemini key query parameters), bearer tokens, staged upload
// names, file paths, hosts, and e-mail addresses from error messages.
package redact

import (
	"regexp"
	"sync"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedUploadPlaceholder     = "[REDACTED_UPLOAD]"
)

// Precompiled regex patterns
var (
	// Stack trace fragments
	stackTraceRegex = regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`)

	// user:password@ in any URL
	credentialURLRegex = regexp.MustCompile(`(?i)\b[a-z][a-z0-9+.-]*://[^\s/:@]+:[^\s@]+@`)

	// Google API keys, bare or as a key= query parameter
	googleKeyRegex = regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`)
	queryKeyRegex  = regexp.MustCompile(`(?i)([?&](?:key|api_key|access_token|token)=)[^&\s"']+`)

	// JWT token pattern - matches the standard three-part base64url-encoded JWT token format
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)
	bearerRegex   = regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9._~+/-]{8,}=*`)

	// Credentials and tokens
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`)
	apiKeyRegex   = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|key|access|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// Staged upload names (student_<uuid>, ideal_<uuid>)
	uploadNameRegex = regexp.MustCompile(`(?:student|ideal)_[0-9a-fA-F-]{32,36}`)

	// File paths
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)
	winPathRegex  = regexp.MustCompile(`[A-Za-z]:\\[^\\]+(\\[^\\]+)+`)

	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// Fully qualified hosts and host:port pairs. Single-dot names are left
	// alone so file names like answers.pdf survive.
	hostPortRegex = regexp.MustCompile(
		`\b(?:[a-zA-Z0-9-]+\.){2,}[a-zA-Z]{2,}(?::\d{1,5})?\b|\b[a-zA-Z0-9-]+(?:\.[a-zA-Z0-9-]+)*:\d{2,5}\b`,
	)

	// Patterns are applied in order.
	patterns = []struct {
		re          *regexp.Regexp
		replacement string
	}{
		{stackTraceRegex, "[STACK_TRACE_REDACTED]"},
		{credentialURLRegex, RedactedCredentialPlaceholder},
		{googleKeyRegex, RedactedKeyPlaceholder},
		{queryKeyRegex, "${1}" + RedactedKeyPlaceholder},
		{jwtTokenRegex, "[REDACTED_JWT]"},
		{bearerRegex, "Bearer " + RedactedKeyPlaceholder},
		{passwordRegex, RedactedCredentialPlaceholder},
		{apiKeyRegex, RedactedKeyPlaceholder},
		{uploadNameRegex, RedactedUploadPlaceholder},
		{unixPathRegex, RedactedPathPlaceholder},
		{winPathRegex, RedactedPathPlaceholder},
		{emailRegex, "[REDACTED_EMAIL]"},
		{hostPortRegex, "[REDACTED_HOST]"},
	}

	mu sync.RWMutex
)

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	mu.RLock()
	defer mu.RUnlock()

	result := input
	for _, p := range patterns {
		result = p.re.ReplaceAllString(result, p.replacement)
	}

	return result
}

// Error redacts sensitive information from an error's message.
// Returns an empty string for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
