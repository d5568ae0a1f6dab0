package languagetool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phrazzld/exam-checker/internal/config"
)

// maxResponseBytes bounds how much of a check response is read.
const maxResponseBytes = 8 << 20

var (
	// ErrInvalidConfig is returned when the client is built without a server URL.
	ErrInvalidConfig = errors.New("invalid languagetool configuration")

	// ErrUnexpectedStatus is returned when the server answers with a non-200 status.
	ErrUnexpectedStatus = errors.New("unexpected languagetool response status")

	// ErrInvalidResponse is returned when the response body cannot be decoded.
	ErrInvalidResponse = errors.New("invalid languagetool response")
)

// checkResponse is the part of the /v2/check response the client reads.
type checkResponse struct {
	Matches []match `json:"matches"`
}

type match struct {
	Message string `json:"message"`
	Offset  int    `json:"offset"`
	Length  int    `json:"length"`
	Rule    struct {
		ID string `json:"id"`
	} `json:"rule"`
}

// Client counts grammar issues using a LanguageTool server.
// It is safe for concurrent use.
type Client struct {
	checkURL   string
	language   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client for the server at cfg.LanguageToolURL.
// A nil httpClient gets a client with cfg.TimeoutSeconds as its timeout.
func NewClient(cfg config.GrammarConfig, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	if cfg.LanguageToolURL == "" {
		return nil, fmt.Errorf("%w: server URL cannot be empty", ErrInvalidConfig)
	}
	base, err := url.Parse(cfg.LanguageToolURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: invalid server URL %q", ErrInvalidConfig, cfg.LanguageToolURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}

	language := cfg.Language
	if language == "" {
		language = "en-US"
	}

	return &Client{
		checkURL:   base.JoinPath("v2", "check").String(),
		language:   language,
		httpClient: httpClient,
		logger:     logger.With(slog.String("component", "languagetool")),
	}, nil
}

// CountIssues implements scoring.GrammarChecker. Blank text has no issues
// and is not sent to the server.
func (c *Client) CountIssues(ctx context.Context, text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}

	form := url.Values{}
	form.Set("text", text)
	form.Set("language", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.checkURL, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, fmt.Errorf("failed to build check request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("languagetool request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.WarnContext(ctx, "failed to close response body", "error", closeErr)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, fmt.Errorf("failed to read languagetool response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var parsed checkResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	c.logger.DebugContext(ctx, "grammar check complete",
		"text_length", len(text),
		"issues", len(parsed.Matches))

	return len(parsed.Matches), nil
}
