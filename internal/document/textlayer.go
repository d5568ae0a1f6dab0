package document

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// TextLayer reads the embedded text of typed documents.
type TextLayer struct {
	logger *slog.Logger
}

var _ Extractor = (*TextLayer)(nil)

// NewTextLayer creates a TextLayer extractor.
func NewTextLayer(logger *slog.Logger) *TextLayer {
	if logger == nil {
		logger = slog.Default()
	}
	return &TextLayer{logger: logger.With(slog.String("component", "text_layer"))}
}

// Extract dispatches on the file extension.
func (t *TextLayer) Extract(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := Extension(path)
	var (
		text string
		err  error
	)
	switch ext {
	case ".pdf":
		text, err = t.pdfText(ctx, path)
	case ".docx":
		text, err = docxText(path)
	case ".txt":
		var data []byte
		data, err = os.ReadFile(path)
		text = string(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return "", fmt.Errorf("extract %s text: %w", ext, err)
	}

	t.logger.DebugContext(ctx, "text extracted",
		slog.String("format", ext),
		slog.Int("text_length", len(text)))
	return text, nil
}

// pdfText concatenates the plain text of every page that has any.
func (t *TextLayer) pdfText(ctx context.Context, path string) (text string, err error) {
	// The pdf reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		pageText, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, pageText)
	}

	t.logger.DebugContext(ctx, "pdf pages read", slog.Int("page_count", r.NumPage()))
	return JoinPages(pages), nil
}

func docxText(path string) (string, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", err
	}
	defer r.Close()

	return docxXMLText(r.Editable().GetContent())
}

// docxXMLText flattens WordprocessingML into text: one line per paragraph,
// with tabs and explicit breaks preserved.
func docxXMLText(content string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(content))
	var (
		b      strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document xml: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br", "cr":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(el)
			}
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
