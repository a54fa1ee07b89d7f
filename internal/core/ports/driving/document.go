package driving

import (
	"context"
	"io"

	"github.com/covenant-labs/covenant-core/internal/core/domain"
)

// DocumentService manages stored contracts for their owner
type DocumentService interface {
	// Get retrieves a document, enforcing ownership
	Get(ctx context.Context, ownerID, id string) (*domain.Document, error)

	// GetWithChunks retrieves a document with its chunks in order
	GetWithChunks(ctx context.Context, ownerID, id string) (*domain.DocumentWithChunks, error)

	// List retrieves an owner's documents newest-first with pagination
	List(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Document, error)

	// Count returns the owner's document count
	Count(ctx context.Context, ownerID string) (int, error)

	// Download retrieves the original uploaded file
	Download(ctx context.Context, ownerID, id string) (io.ReadCloser, *domain.Document, error)

	// Delete removes a document, its chunks and its stored file
	Delete(ctx context.Context, ownerID, id string) error
}
