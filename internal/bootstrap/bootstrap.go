// Package bootstrap assembles the grading service from configuration. The
// server and the command-line grader both start through Build so they run
// the same pipeline.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/exam-checker/internal/capability"
	"github.com/phrazzld/exam-checker/internal/config"
	"github.com/phrazzld/exam-checker/internal/document"
	"github.com/phrazzld/exam-checker/internal/platform/poppler"
	"github.com/phrazzld/exam-checker/internal/platform/tesseract"
	"github.com/phrazzld/exam-checker/internal/service/grading"
)

// Grader owns the grading service and the long-lived resources behind it.
type Grader struct {
	Service grading.Service

	recognizer *tesseract.Recognizer
	logger     *slog.Logger
}

// Build constructs every capability once and wires them into a grading
// service. Close releases the resources when the caller is done.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...grading.Option) (*Grader, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	engine, err := capability.NewEngine(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	recognizer, err := tesseract.NewRecognizer(cfg.Grading, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OCR recognizer: %w", err)
	}

	ocr, err := document.NewOCR(poppler.NewRenderer(cfg.Grading, logger), recognizer, logger)
	if err != nil {
		_ = recognizer.Close()
		return nil, fmt.Errorf("failed to initialize OCR extractor: %w", err)
	}

	svc, err := grading.NewService(
		engine,
		document.NewTextLayer(logger),
		ocr,
		grading.Config{
			Concurrency: cfg.Grading.Concurrency,
			UploadDir:   cfg.Server.UploadDir,
		},
		logger,
		opts...,
	)
	if err != nil {
		_ = recognizer.Close()
		return nil, fmt.Errorf("failed to create grading service: %w", err)
	}

	logger.Info("grading pipeline initialized",
		slog.String("grammar_provider", cfg.Grammar.Provider),
		slog.String("embedding_provider", cfg.Embedding.Provider),
		slog.Int("concurrency", cfg.Grading.Concurrency),
		slog.Any("ocr_languages", cfg.Grading.OCRLanguages))

	return &Grader{
		Service:    svc,
		recognizer: recognizer,
		logger:     logger,
	}, nil
}

// Close releases the OCR engine. It is safe to call more than once.
func (g *Grader) Close() error {
	if g == nil || g.recognizer == nil {
		return nil
	}
	if err := g.recognizer.Close(); err != nil {
		g.logger.Error("failed to close OCR recognizer", slog.String("error", err.Error()))
		return err
	}
	return nil
}
