package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/covenant-labs/covenant-core/internal/core/domain"
	"github.com/covenant-labs/covenant-core/internal/core/ports/driven"
	"github.com/covenant-labs/covenant-core/internal/core/ports/driving"
)

// Ensure documentService implements DocumentService
var _ driving.DocumentService = (*documentService)(nil)

// documentService implements the DocumentService interface
type documentService struct {
	documentStore driven.DocumentStore
	chunkStore    driven.ChunkStore
	blobStore     driven.BlobStore
	logger        *slog.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	documentStore driven.DocumentStore,
	chunkStore driven.ChunkStore,
	blobStore driven.BlobStore,
	logger *slog.Logger,
) driving.DocumentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &documentService{
		documentStore: documentStore,
		chunkStore:    chunkStore,
		blobStore:     blobStore,
		logger:        logger,
	}
}

// getOwned retrieves a document and enforces ownership. A document
// belonging to another user reads as not found, never as forbidden,
// so existence is not leaked.
func (s *documentService) getOwned(ctx context.Context, ownerID, id string) (*domain.Document, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	doc, err := s.documentStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.UserID != ownerID {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func (s *documentService) Get(ctx context.Context, ownerID, id string) (*domain.Document, error) {
	return s.getOwned(ctx, ownerID, id)
}

func (s *documentService) GetWithChunks(ctx context.Context, ownerID, id string) (*domain.DocumentWithChunks, error) {
	doc, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	chunks, err := s.chunkStore.GetByDocument(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load chunks for %s: %w", id, err)
	}
	return &domain.DocumentWithChunks{Document: doc, Chunks: chunks}, nil
}

func (s *documentService) List(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Document, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.documentStore.List(ctx, ownerID, limit, offset)
}

func (s *documentService) Count(ctx context.Context, ownerID string) (int, error) {
	if ownerID == "" {
		return 0, domain.ErrUnauthorized
	}
	return s.documentStore.Count(ctx, ownerID)
}

func (s *documentService) Download(ctx context.Context, ownerID, id string) (io.ReadCloser, *domain.Document, error) {
	doc, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, nil, err
	}
	if s.blobStore == nil {
		return nil, nil, domain.ErrNotFound
	}
	r, err := s.blobStore.Get(ctx, blobKey(doc))
	if err != nil {
		return nil, nil, fmt.Errorf("load original file for %s: %w", id, err)
	}
	return r, doc, nil
}

// Delete removes the document record, its chunks and its stored file.
// The database schema cascades chunk deletion as a backstop, but the
// chunks are deleted explicitly so a partial failure is visible here.
func (s *documentService) Delete(ctx context.Context, ownerID, id string) error {
	doc, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if err := s.chunkStore.DeleteByDocument(ctx, id); err != nil {
		return fmt.Errorf("delete chunks for %s: %w", id, err)
	}
	if err := s.documentStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	if s.blobStore != nil {
		if err := s.blobStore.Delete(ctx, blobKey(doc)); err != nil {
			s.logger.Warn("stored file cleanup failed", "document_id", id, "error", err)
		}
	}

	s.logger.Info("document deleted", "document_id", id)
	return nil
}
