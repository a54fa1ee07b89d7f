package extractors

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// plainTypes are content types read verbatim as text
var plainTypes = map[string]bool{
	"text/plain":    true,
	"text/markdown": true,
	"text/csv":      true,
}

// PlainExtractor reads text files as-is
type PlainExtractor struct{}

// NewPlainExtractor creates a new PlainExtractor
func NewPlainExtractor() *PlainExtractor {
	return &PlainExtractor{}
}

func (e *PlainExtractor) Supports(contentType string) bool {
	// Content types may carry parameters, e.g. "text/plain; charset=utf-8"
	base := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	return plainTypes[strings.ToLower(base)]
}

func (e *PlainExtractor) Extract(ctx context.Context, r io.ReaderAt, size int64) (string, error) {
	buf := make([]byte, size)
	if _, err := r.ReadAt(buf, 0); err != nil && err != io.EOF {
		return "", fmt.Errorf("read text file: %w", err)
	}
	return string(buf), nil
}
