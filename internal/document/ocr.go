package document

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
)

// PageRenderer rasterises every page of a PDF into outDir and returns the
// image paths in page order.
type PageRenderer interface {
	Render(ctx context.Context, pdfPath, outDir string) ([]string, error)
}

// Recognizer reads the text in a single page image.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// OCR extracts text from scanned or handwritten documents. PDFs are rendered
// to page images first; image files are recognised directly.
type OCR struct {
	renderer   PageRenderer
	recognizer Recognizer
	logger     *slog.Logger
}

var _ Extractor = (*OCR)(nil)

// NewOCR creates an OCR extractor. The recognizer is shared across calls.
func NewOCR(renderer PageRenderer, recognizer Recognizer, logger *slog.Logger) (*OCR, error) {
	if renderer == nil {
		return nil, fmt.Errorf("page renderer cannot be nil")
	}
	if recognizer == nil {
		return nil, fmt.Errorf("recognizer cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OCR{
		renderer:   renderer,
		recognizer: recognizer,
		logger:     logger.With(slog.String("component", "ocr_extractor")),
	}, nil
}

// Extract returns the recognised text of every page, each followed by a
// newline.
func (o *OCR) Extract(ctx context.Context, path string) (string, error) {
	ext := Extension(path)
	switch {
	case ext == ".pdf":
		return o.extractPDF(ctx, path)
	case slices.Contains(ImageExtensions, ext):
		return o.recognizeFiles(ctx, []string{path})
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func (o *OCR) extractPDF(ctx context.Context, path string) (string, error) {
	dir, err := os.MkdirTemp("", "exam-pages-*")
	if err != nil {
		return "", fmt.Errorf("%w: create page directory: %w", ErrRenderFailed, err)
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			o.logger.WarnContext(ctx, "failed to remove page directory", slog.String("error", err.Error()))
		}
	}()

	images, err := o.renderer.Render(ctx, path, dir)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}

	o.logger.DebugContext(ctx, "pages rendered", slog.Int("page_count", len(images)))
	return o.recognizeFiles(ctx, images)
}

func (o *OCR) recognizeFiles(ctx context.Context, images []string) (string, error) {
	var b strings.Builder
	for i, img := range images {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		data, err := os.ReadFile(img)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %w", ErrRecognitionFailed, i+1, err)
		}

		text, err := o.recognizer.Recognize(ctx, data)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %w", ErrRecognitionFailed, i+1, err)
		}

		b.WriteString(text)
		b.WriteByte('\n')
	}
	return b.String(), nil
}
