package driven

import (
	"context"
	"time"

	"github.com/covenant-labs/covenant-core/internal/core/domain"
)

// DocumentFilter narrows a document search. OwnerID is always required;
// the Contains fields are case-insensitive substring matches and are
// combined with OR when more than one is set.
type DocumentFilter struct {
	OwnerID          string
	NameContains     string
	PartiesContains  string
	FilenameContains string
	IDs              []string
}

// ChunkFilter narrows a chunk search. OwnerID is always required.
type ChunkFilter struct {
	OwnerID      string
	TextContains string
}

// DocumentStore handles contract document persistence (PostgreSQL)
type DocumentStore interface {
	// Insert creates a document
	Insert(ctx context.Context, doc *domain.Document) error

	// Get retrieves a document by ID
	Get(ctx context.Context, id string) (*domain.Document, error)

	// GetByIDs retrieves multiple documents in one query
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Document, error)

	// List retrieves an owner's documents newest-first with pagination
	List(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Document, error)

	// Search retrieves documents matching the filter, newest-first
	Search(ctx context.Context, filter DocumentFilter, limit int) ([]*domain.Document, error)

	// Delete deletes a document
	Delete(ctx context.Context, id string) error

	// Count returns document count for an owner
	Count(ctx context.Context, ownerID string) (int, error)

	// UpdateStatus updates a document's lifecycle status
	UpdateStatus(ctx context.Context, id string, status domain.Status) error

	// ListWithExpiryBefore retrieves documents across all owners whose
	// expiry date falls before the cutoff, excluding the given status
	ListWithExpiryBefore(ctx context.Context, cutoff time.Time, excludeStatus domain.Status) ([]*domain.Document, error)
}

// ChunkStore handles chunk persistence (PostgreSQL)
type ChunkStore interface {
	// SaveBatch saves multiple chunks in a transaction
	SaveBatch(ctx context.Context, chunks []*domain.Chunk) error

	// Search retrieves chunks whose content matches the filter
	Search(ctx context.Context, filter ChunkFilter, limit int) ([]*domain.Chunk, error)

	// GetByDocument retrieves all chunks for a document ordered by index
	GetByDocument(ctx context.Context, documentID string) ([]*domain.Chunk, error)

	// DeleteByDocument deletes all chunks for a document
	DeleteByDocument(ctx context.Context, documentID string) error
}
