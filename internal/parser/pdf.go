package parser

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFParser extracts text from PDF files using github.com/ledongthuc/pdf
type PDFParser struct{}

// NewPDFParser creates a new PDF parser
func NewPDFParser() *PDFParser {
	return &PDFParser{}
}

// Extract pulls the plain text out of a PDF, page by page. Pages that fail
// to decode are skipped; the result is the remaining pages joined by blank
// lines. An empty result (scanned or image-only PDF) is an error.
func (p *PDFParser) Extract(ctx context.Context, data []byte) (text string, err error) {
	// The pdf library panics on some malformed files; turn that into an error
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var pages []string
	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(fonts)
		if err != nil {
			continue
		}
		if trimmed := strings.TrimSpace(pageText); trimmed != "" {
			pages = append(pages, trimmed)
		}
	}

	text = strings.TrimSpace(strings.Join(pages, "\n\n"))
	if text == "" {
		return "", fmt.Errorf("no text could be extracted from the PDF")
	}

	return text, nil
}

// SupportedFormats returns the formats this parser supports
func (p *PDFParser) SupportedFormats() []string {
	return []string{"pdf"}
}
