package tesseract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/otiai10/gosseract/v2"
	"github.com/phrazzld/exam-checker/internal/config"
)

// ErrClosed is returned by Recognize after Close.
var ErrClosed = errors.New("tesseract recognizer is closed")

// Recognizer wraps a single process-wide Tesseract client. The client is not
// safe for concurrent use, so calls are serialised.
type Recognizer struct {
	mu     sync.Mutex
	client *gosseract.Client
	dpi    int
	logger *slog.Logger
}

// NewRecognizer creates a Recognizer using the configured OCR languages and
// the DPI pages are rendered at.
func NewRecognizer(cfg config.GradingConfig, logger *slog.Logger) (*Recognizer, error) {
	if len(cfg.OCRLanguages) == 0 {
		return nil, fmt.Errorf("at least one OCR language is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	client := gosseract.NewClient()
	if err := client.SetLanguage(cfg.OCRLanguages...); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("set languages: %w", err)
	}

	return &Recognizer{
		client: client,
		dpi:    cfg.RenderDPI,
		logger: logger.With(slog.String("component", "tesseract")),
	}, nil
}

// Recognize implements document.Recognizer.
func (r *Recognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client == nil {
		return "", ErrClosed
	}

	if err := r.client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if r.dpi > 0 {
		if err := r.client.SetVariable(gosseract.SettableVariable("user_defined_dpi"), strconv.Itoa(r.dpi)); err != nil {
			return "", fmt.Errorf("set dpi: %w", err)
		}
	}

	text, err := r.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}

	r.logger.DebugContext(ctx, "page recognised",
		"image_bytes", len(image),
		"text_length", len(text))
	return text, nil
}

// Close releases the Tesseract client. It is safe to call more than once.
func (r *Recognizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client == nil {
		return nil
	}
	err := r.client.Close()
	r.client = nil
	return err
}
