package extractors

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/covenant-labs/covenant-core/internal/core/ports/driven"
)

// PDFExtractor extracts plain text from PDF files
type PDFExtractor struct{}

// NewPDFExtractor creates a new PDFExtractor
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

var _ driven.Extractor = (*PDFExtractor)(nil)

func (e *PDFExtractor) Supports(contentType string) bool {
	return strings.EqualFold(contentType, "application/pdf")
}

func (e *PDFExtractor) Extract(ctx context.Context, r io.ReaderAt, size int64) (string, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var buf strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep what we have
			continue
		}
		buf.WriteString(text)
		buf.WriteString("\n")
	}
	return buf.String(), nil
}
