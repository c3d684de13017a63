package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

var (
	// ErrUnsupportedFormat is returned for documents that are neither plain text nor PDF.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrExtractionFailed is returned when a supported document cannot be decoded.
	ErrExtractionFailed = errors.New("extraction failed")
)

// pageSource exposes the text fragments of a paginated document, pages numbered from 1.
type pageSource interface {
	NumPage() int
	Fragments(page int) ([]string, error)
}

// Extractor turns uploaded documents into plain text.
type Extractor struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// ExtractFile reads the file at path and extracts its text.
func (e *Extractor) ExtractFile(ctx context.Context, path, declared string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: reading %q: %w", ErrExtractionFailed, path, err)
	}

	return e.Extract(ctx, NewDocument(path, data, declared))
}

// Extract returns the plain text of the document. It is a single attempt:
// there is no fallback to another format on failure.
func (e *Extractor) Extract(ctx context.Context, doc Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var (
		text string
		err  error
	)

	switch doc.MIMEType {
	case MIMEPlainText:
		text, err = extractPlainText(doc.Data)
	case MIMEPDF:
		text, err = extractPDF(doc.Data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, doc.MIMEType)
	}

	if err != nil {
		e.logger.Debug("document extraction failed",
			zap.String("document", doc.Name),
			zap.String("mime_type", doc.MIMEType),
			zap.Error(err),
		)
		return "", err
	}

	e.logger.Debug("document extracted",
		zap.String("document", doc.Name),
		zap.String("mime_type", doc.MIMEType),
		zap.Int("bytes", len(doc.Data)),
		zap.Int("text_length", utf8.RuneCountInString(text)),
	)

	return text, nil
}

func extractPlainText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrExtractionFailed)
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: file is not valid UTF-8 text", ErrExtractionFailed)
	}

	return string(data), nil
}

func extractPDF(data []byte) (text string, err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: malformed pdf: %v", ErrExtractionFailed, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: open pdf: %w", ErrExtractionFailed, err)
	}

	return joinPages(&pdfPages{reader: reader})
}

// joinPages joins the fragments of a page with a single space and the pages with a newline.
// Page order and count are preserved; an empty page yields an empty segment.
func joinPages(src pageSource) (string, error) {
	total := src.NumPage()
	pages := make([]string, 0, total)

	for i := 1; i <= total; i++ {
		fragments, err := src.Fragments(i)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %w", ErrExtractionFailed, i, err)
		}
		pages = append(pages, strings.Join(fragments, " "))
	}

	return strings.Join(pages, "\n"), nil
}

type pdfPages struct {
	reader *pdf.Reader
}

func (p *pdfPages) NumPage() int {
	return p.reader.NumPage()
}

// Fragments returns the text runs of the page, rows top to bottom and left to right within a row.
func (p *pdfPages) Fragments(index int) ([]string, error) {
	page := p.reader.Page(index)
	if page.V.IsNull() {
		return nil, nil
	}

	rows, err := page.GetTextByRow()
	if err != nil {
		return nil, err
	}

	var fragments []string
	for _, row := range rows {
		for _, text := range row.Content {
			fragments = append(fragments, text.S)
		}
	}

	return fragments, nil
}
