package driving

import (
	"context"
	"io"
	"time"

	"github.com/covenant-labs/covenant-core/internal/core/domain"
)

// IngestRequest carries one uploaded contract file
type IngestRequest struct {
	OwnerID     string
	Filename    string
	ContentType string
	Size        int64
	Parties     string
	ExpiryAt    *time.Time
	Risk        domain.RiskLevel
	File        io.ReaderAt
}

// IngestResult reports what ingestion stored for one file
type IngestResult struct {
	Document   *domain.Document `json:"document"`
	ChunkCount int              `json:"chunk_count"`
	// ChunksFailed is set when the document was stored but its chunks
	// could not be, leaving the contract metadata-searchable only.
	ChunksFailed bool `json:"chunks_failed,omitempty"`
}

// IngestService turns uploaded files into searchable contracts
type IngestService interface {
	// Ingest extracts, splits and stores a single uploaded file.
	// Failure to store chunks or the original file is not fatal; the
	// document record is the source of truth.
	Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error)
}
