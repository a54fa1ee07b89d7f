package extractors

import (
	"context"
	"fmt"
	"io"

	"github.com/covenant-labs/covenant-core/internal/core/ports/driven"
)

// Registry routes an uploaded file to the extractor that handles its
// content type.
type Registry struct {
	extractors []driven.Extractor
}

// NewRegistry creates a registry with the default extractors
func NewRegistry() *Registry {
	return &Registry{
		extractors: []driven.Extractor{
			NewPDFExtractor(),
			NewPlainExtractor(),
		},
	}
}

var _ driven.ExtractorRegistry = (*Registry)(nil)

// Register adds an extractor to the registry
func (r *Registry) Register(e driven.Extractor) {
	r.extractors = append(r.extractors, e)
}

// Supports reports whether any registered extractor handles the content type
func (r *Registry) Supports(contentType string) bool {
	for _, e := range r.extractors {
		if e.Supports(contentType) {
			return true
		}
	}
	return false
}

// Extract runs the first extractor that supports the content type
func (r *Registry) Extract(ctx context.Context, reader io.ReaderAt, size int64, contentType string) (string, error) {
	for _, e := range r.extractors {
		if e.Supports(contentType) {
			return e.Extract(ctx, reader, size)
		}
	}
	return "", fmt.Errorf("unsupported content type: %s", contentType)
}
