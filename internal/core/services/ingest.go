package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/covenant-labs/covenant-core/internal/core/domain"
	"github.com/covenant-labs/covenant-core/internal/core/ports/driven"
	"github.com/covenant-labs/covenant-core/internal/core/ports/driving"
)

// Ensure ingestService implements IngestService
var _ driving.IngestService = (*ingestService)(nil)

// ingestService implements the upload-to-searchable pipeline
type ingestService struct {
	documentStore driven.DocumentStore
	chunkStore    driven.ChunkStore
	blobStore     driven.BlobStore
	extractors    driven.ExtractorRegistry
	splitter      driven.Splitter
	logger        *slog.Logger
}

// IngestServiceConfig holds dependencies for the ingest service
type IngestServiceConfig struct {
	DocumentStore driven.DocumentStore
	ChunkStore    driven.ChunkStore
	BlobStore     driven.BlobStore
	Extractors    driven.ExtractorRegistry
	Splitter      driven.Splitter
	Logger        *slog.Logger
}

// NewIngestService creates a new IngestService
func NewIngestService(cfg IngestServiceConfig) driving.IngestService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ingestService{
		documentStore: cfg.DocumentStore,
		chunkStore:    cfg.ChunkStore,
		blobStore:     cfg.BlobStore,
		extractors:    cfg.Extractors,
		splitter:      cfg.Splitter,
		logger:        logger,
	}
}

// Ingest extracts text from the upload, stores the document record,
// then stores chunks and the original file. The document insert is the
// only fatal step: once the record exists, chunk and blob failures are
// logged and reported but the upload succeeds.
func (s *ingestService) Ingest(ctx context.Context, req driving.IngestRequest) (*driving.IngestResult, error) {
	if req.OwnerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if req.Filename == "" || req.File == nil {
		return nil, domain.ErrInvalidInput
	}
	// Extraction is best-effort. Unsupported or undecodable content
	// degrades to an empty body; the document is still stored and stays
	// reachable through metadata search.
	var text string
	if !s.extractors.Supports(req.ContentType) {
		s.logger.Warn("no extractor for content type, storing metadata only",
			"filename", req.Filename, "content_type", req.ContentType)
	} else if extracted, err := s.extractors.Extract(ctx, req.File, req.Size, req.ContentType); err != nil {
		s.logger.Warn("text extraction failed, storing metadata only",
			"filename", req.Filename, "content_type", req.ContentType, "error", err)
	} else {
		text = extracted
	}

	risk := req.Risk
	if risk == "" {
		risk = domain.RiskLow
	}

	doc := &domain.Document{
		ID:           uuid.NewString(),
		UserID:       req.OwnerID,
		Filename:     req.Filename,
		ContractName: contractName(req.Filename),
		Parties:      req.Parties,
		UploadedAt:   time.Now(),
		ExpiryAt:     req.ExpiryAt,
		Status:       domain.StatusActive,
		Risk:         risk,
		FileSize:     req.Size,
		FileType:     req.ContentType,
	}

	if err := s.documentStore.Insert(ctx, doc); err != nil {
		return nil, fmt.Errorf("store document %s: %w", req.Filename, err)
	}

	result := &driving.IngestResult{Document: doc}

	fragments := s.splitter.Split(text)
	if len(fragments) > 0 {
		chunks := make([]*domain.Chunk, 0, len(fragments))
		now := time.Now()
		for _, f := range fragments {
			chunks = append(chunks, &domain.Chunk{
				ID:         uuid.NewString(),
				DocumentID: doc.ID,
				UserID:     req.OwnerID,
				Content:    f.Text,
				Index:      f.Index,
				CreatedAt:  now,
			})
		}
		if err := s.chunkStore.SaveBatch(ctx, chunks); err != nil {
			s.logger.Warn("chunk save failed, document is metadata-searchable only",
				"document_id", doc.ID, "chunks", len(chunks), "error", err)
			result.ChunksFailed = true
		} else {
			result.ChunkCount = len(chunks)
		}
	}

	if s.blobStore != nil {
		if err := s.blobStore.Put(ctx, blobKey(doc), io.NewSectionReader(req.File, 0, req.Size), req.Size, req.ContentType); err != nil {
			s.logger.Warn("original file retention failed",
				"document_id", doc.ID, "filename", req.Filename, "error", err)
		}
	}

	s.logger.Info("document ingested",
		"document_id", doc.ID, "filename", req.Filename, "chunks", result.ChunkCount)
	return result, nil
}

// contractName derives the display name from the uploaded filename
func contractName(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// blobKey is the storage key for a document's original file
func blobKey(doc *domain.Document) string {
	return doc.UserID + "/" + doc.ID + "/" + doc.Filename
}
