package poppler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/phrazzld/exam-checker/internal/config"
)

// pagePrefix names rendered files <outDir>/page-<n>.png.
const pagePrefix = "page"

var (
	// ErrRenderFailed is returned when pdftoppm exits with an error.
	ErrRenderFailed = errors.New("pdftoppm failed")

	// ErrNoPages is returned when rendering succeeds but produces no images.
	ErrNoPages = errors.New("pdf rendered no pages")
)

// Renderer runs pdftoppm to rasterise PDFs.
type Renderer struct {
	binary string
	dpi    int
	logger *slog.Logger
}

// NewRenderer creates a Renderer from the grading settings.
func NewRenderer(cfg config.GradingConfig, logger *slog.Logger) *Renderer {
	binary := cfg.PdftoppmPath
	if binary == "" {
		binary = "pdftoppm"
	}
	dpi := cfg.RenderDPI
	if dpi <= 0 {
		dpi = 200
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		binary: binary,
		dpi:    dpi,
		logger: logger.With(slog.String("component", "pdf_renderer")),
	}
}

// Render implements document.PageRenderer.
func (r *Renderer) Render(ctx context.Context, pdfPath, outDir string) ([]string, error) {
	prefix := filepath.Join(outDir, pagePrefix)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.binary, "-r", strconv.Itoa(r.dpi), "-png", pdfPath, prefix)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v: %s", ErrRenderFailed, err, strings.TrimSpace(stderr.String()))
	}

	pages, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, fmt.Errorf("list rendered pages: %w", err)
	}
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	sortByPageNumber(pages)

	r.logger.DebugContext(ctx, "pdf rendered",
		"pages", len(pages),
		"dpi", r.dpi)
	return pages, nil
}

// sortByPageNumber orders page-<n>.png paths by n. pdftoppm zero-pads n to
// the width of the page count, but numeric order does not depend on that.
func sortByPageNumber(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		return pageNumber(paths[i]) < pageNumber(paths[j])
	})
}

func pageNumber(path string) int {
	base := strings.TrimSuffix(filepath.Base(path), ".png")
	idx := strings.LastIndex(base, "-")
	if idx < 0 {
		return 0
	}
	n, err := strconv.Atoi(base[idx+1:])
	if err != nil {
		return 0
	}
	return n
}
