package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/template"

	"github.com/phrazzld/exam-checker/internal/config"
	"google.golang.org/genai"
)

// GrammarChecker counts grammar and spelling issues by asking a Gemini model
// to list them as JSON. It is safe for concurrent use.
type GrammarChecker struct {
	logger   *slog.Logger
	models   modelsAPI
	model    string
	language string
	prompt   *template.Template
	retry    retryPolicy
}

// NewGrammarChecker creates a GrammarChecker from the Gemini settings.
//
// Parameters:
//   - ctx: Context for client initialization
//   - logger: A structured logger for operation logging
//   - cfg: Gemini configuration with API key, model, prompt template and retry settings
//   - language: Language tag passed to the prompt, e.g. "en-US"
//
// Returns:
//   - A ready GrammarChecker or an error wrapping ErrInvalidConfig
func NewGrammarChecker(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.GeminiConfig,
	language string,
) (*GrammarChecker, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", ErrInvalidConfig)
	}
	if cfg.GrammarModel == "" {
		return nil, fmt.Errorf("%w: grammar model name cannot be empty", ErrInvalidConfig)
	}
	if cfg.PromptTemplatePath == "" {
		return nil, fmt.Errorf("%w: prompt template path cannot be empty", ErrInvalidConfig)
	}

	templateContent, err := os.ReadFile(cfg.PromptTemplatePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
			ErrInvalidConfig, cfg.PromptTemplatePath, err)
	}

	prompt, err := parsePrompt(string(templateContent))
	if err != nil {
		return nil, err
	}

	models, err := newModels(ctx, cfg.APIKey)
	if err != nil {
		return nil, err
	}

	return newGrammarChecker(logger, models, cfg, language, prompt), nil
}

func newGrammarChecker(
	logger *slog.Logger,
	models modelsAPI,
	cfg config.GeminiConfig,
	language string,
	prompt *template.Template,
) *GrammarChecker {
	logger = logger.With(slog.String("component", "gemini_grammar"))
	return &GrammarChecker{
		logger:   logger,
		models:   models,
		model:    cfg.GrammarModel,
		language: language,
		prompt:   prompt,
		retry:    newRetryPolicy(logger, cfg.MaxRetries, cfg.RetryDelaySeconds),
	}
}

func parsePrompt(content string) (*template.Template, error) {
	prompt, err := template.New("grammar_check").Option("missingkey=error").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", ErrInvalidConfig, err)
	}
	return prompt, nil
}

// CountIssues implements scoring.GrammarChecker. Blank text has no issues
// and is not sent to the API.
func (g *GrammarChecker) CountIssues(ctx context.Context, text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}

	prompt, err := g.createPrompt(text)
	if err != nil {
		return 0, err
	}

	var issues int
	err = g.retry.do(ctx, "grammar_check", func(ctx context.Context) error {
		resp, err := g.models.GenerateContent(ctx, g.model, userContent(prompt), &genai.GenerateContentConfig{
			Temperature:      genai.Ptr[float32](0),
			ResponseMIMEType: "application/json",
			ResponseSchema:   grammarSchema,
		})
		if err != nil {
			return err
		}

		parsed, err := parseGrammarResponse(resp)
		if err != nil {
			return err
		}
		issues = len(parsed.Issues)
		return nil
	})
	if err != nil {
		return 0, err
	}

	g.logger.DebugContext(ctx, "grammar check complete",
		"text_length", len(text),
		"issues", issues)
	return issues, nil
}

func (g *GrammarChecker) createPrompt(text string) (string, error) {
	var buf bytes.Buffer
	if err := g.prompt.Execute(&buf, promptData{Text: text, Language: g.language}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

// parseGrammarResponse extracts the issue list from a generation response.
func parseGrammarResponse(resp *genai.GenerateContentResponse) (*grammarResponse, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: nil response", ErrInvalidResponse)
	}
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no content generated", ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return nil, ErrContentBlocked
	}
	if candidate.Content == nil {
		return nil, fmt.Errorf("%w: empty content in response", ErrInvalidResponse)
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			text.WriteString(part.Text)
		}
	}

	var parsed grammarResponse
	if err := json.Unmarshal([]byte(text.String()), &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", ErrInvalidResponse, err)
	}
	return &parsed, nil
}

func newModels(ctx context.Context, apiKey string) (*genai.Models, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", ErrInvalidConfig, err)
	}
	return client.Models, nil
}
