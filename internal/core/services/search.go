package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/covenant-labs/covenant-core/internal/core/domain"
	"github.com/covenant-labs/covenant-core/internal/core/ports/driven"
	"github.com/covenant-labs/covenant-core/internal/core/ports/driving"
)

// Stage result limits. Name matches dominate, chunk hits fill out the
// middle, and the metadata fallback only runs when both come up empty.
const (
	nameMatchLimit  = 10
	chunkMatchLimit = 15
	fallbackLimit   = 5
)

// Ensure searchService implements SearchService
var _ driving.SearchService = (*searchService)(nil)

// searchService implements the staged keyword search
type searchService struct {
	documentStore driven.DocumentStore
	chunkStore    driven.ChunkStore
	logger        *slog.Logger
}

// NewSearchService creates a new SearchService
func NewSearchService(
	documentStore driven.DocumentStore,
	chunkStore driven.ChunkStore,
	logger *slog.Logger,
) driving.SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &searchService{
		documentStore: documentStore,
		chunkStore:    chunkStore,
		logger:        logger,
	}
}

// Search runs the three stages in order: contract names, then chunk
// content, then a parties/filename fallback that only fires when the
// first two found nothing. A failed stage degrades to zero results for
// that stage; the query as a whole never errors on store failure.
func (s *searchService) Search(ctx context.Context, ownerID, query string) ([]domain.SearchResult, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.SearchResult{}, nil
	}

	results := s.searchNames(ctx, ownerID, query)
	results = append(results, s.searchChunks(ctx, ownerID, query)...)

	if len(results) == 0 {
		results = s.searchFallback(ctx, ownerID, query)
	}
	return results, nil
}

// searchNames matches the query against contract names
func (s *searchService) searchNames(ctx context.Context, ownerID, query string) []domain.SearchResult {
	docs, err := s.documentStore.Search(ctx, driven.DocumentFilter{
		OwnerID:      ownerID,
		NameContains: query,
	}, nameMatchLimit)
	if err != nil {
		s.logger.Warn("name search failed", "error", err, "query", query)
		return nil
	}

	results := make([]domain.SearchResult, 0, len(docs))
	for _, doc := range docs {
		results = append(results, domain.NewDocumentResult(doc, domain.DocumentSummary(doc)))
	}
	return results
}

// searchChunks matches the query against chunk content, then resolves
// all parent documents in a single batched lookup. Chunks whose parent
// cannot be resolved are dropped.
func (s *searchService) searchChunks(ctx context.Context, ownerID, query string) []domain.SearchResult {
	chunks, err := s.chunkStore.Search(ctx, driven.ChunkFilter{
		OwnerID:      ownerID,
		TextContains: query,
	}, chunkMatchLimit)
	if err != nil {
		s.logger.Warn("chunk search failed", "error", err, "query", query)
		return nil
	}
	if len(chunks) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var ids []string
	for _, chunk := range chunks {
		if !seen[chunk.DocumentID] {
			seen[chunk.DocumentID] = true
			ids = append(ids, chunk.DocumentID)
		}
	}

	docs, err := s.documentStore.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn("chunk parent lookup failed", "error", err, "documents", len(ids))
		return nil
	}
	byID := make(map[string]*domain.Document, len(docs))
	for _, doc := range docs {
		byID[doc.ID] = doc
	}

	results := make([]domain.SearchResult, 0, len(chunks))
	for _, chunk := range chunks {
		doc, ok := byID[chunk.DocumentID]
		if !ok {
			s.logger.Warn("dropping chunk with missing parent",
				"chunk_id", chunk.ID, "document_id", chunk.DocumentID)
			continue
		}
		results = append(results, domain.NewChunkResult(chunk, doc))
	}
	return results
}

// searchFallback matches the query against parties and filenames
func (s *searchService) searchFallback(ctx context.Context, ownerID, query string) []domain.SearchResult {
	docs, err := s.documentStore.Search(ctx, driven.DocumentFilter{
		OwnerID:          ownerID,
		PartiesContains:  query,
		FilenameContains: query,
	}, fallbackLimit)
	if err != nil {
		s.logger.Warn("fallback search failed", "error", err, "query", query)
		return nil
	}

	results := make([]domain.SearchResult, 0, len(docs))
	for _, doc := range docs {
		results = append(results, domain.NewDocumentResult(doc, domain.FallbackSummary(doc)))
	}
	return results
}
