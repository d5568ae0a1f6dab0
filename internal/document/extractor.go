package document

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"
)

// Common errors
var (
	// ErrUnsupportedFormat is returned for file extensions an extractor cannot read.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrRenderFailed is returned when a PDF cannot be rasterised for OCR.
	ErrRenderFailed = errors.New("failed to render document pages")

	// ErrRecognitionFailed is returned when OCR fails on a page image.
	ErrRecognitionFailed = errors.New("failed to recognise page text")
)

// Extractor turns a document on disk into plain text.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Extension returns the lower-cased extension of path, including the dot.
func Extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// TextLayerExtensions lists the formats TextLayer can read.
var TextLayerExtensions = []string{".pdf", ".docx", ".txt"}

// ImageExtensions lists the image formats OCR reads without rendering.
var ImageExtensions = []string{".png", ".jpg", ".jpeg", ".tif", ".tiff"}

// Supported reports whether ext is readable by the text layer or OCR.
func Supported(ext string) bool {
	ext = strings.ToLower(ext)
	return slices.Contains(TextLayerExtensions, ext) || slices.Contains(ImageExtensions, ext)
}

// JoinPages joins page texts with newlines, skipping pages with no text.
func JoinPages(pages []string) string {
	kept := make([]string, 0, len(pages))
	for _, p := range pages {
		if p == "" {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, "\n")
}
