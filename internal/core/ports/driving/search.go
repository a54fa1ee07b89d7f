package driving

import (
	"context"

	"github.com/covenant-labs/covenant-core/internal/core/domain"
)

// SearchService handles contract search operations
type SearchService interface {
	// Search runs the staged keyword search over an owner's contracts.
	// An empty or whitespace-only query returns no results.
	Search(ctx context.Context, ownerID, query string) ([]domain.SearchResult, error)
}
