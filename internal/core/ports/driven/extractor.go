package driven

import (
	"context"
	"io"
)

// Extractor converts an uploaded file into plain text.
type Extractor interface {
	// Extract reads the file and returns its text content.
	// Size is the total byte length, needed by formats that seek.
	Extract(ctx context.Context, r io.ReaderAt, size int64) (string, error)

	// Supports reports whether the extractor handles the content type.
	Supports(contentType string) bool
}

// ExtractorRegistry routes a file to the extractor for its content type.
type ExtractorRegistry interface {
	// Extract picks an extractor by content type and runs it.
	Extract(ctx context.Context, r io.ReaderAt, size int64, contentType string) (string, error)

	// Supports reports whether any extractor handles the content type.
	Supports(contentType string) bool
}
