package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"

	"github.com/covenant-labs/covenant-core/internal/core/domain"
	"github.com/covenant-labs/covenant-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ChunkStore = (*ChunkStore)(nil)

const chunkColumns = "id, document_id, user_id, content, position, page_number, embedding, metadata, created_at"

// ChunkStore implements driven.ChunkStore using PostgreSQL
type ChunkStore struct {
	db *DB
}

// NewChunkStore creates a new ChunkStore
func NewChunkStore(db *DB) *ChunkStore {
	return &ChunkStore{db: db}
}

// SaveBatch saves multiple chunks in a transaction
func (s *ChunkStore) SaveBatch(ctx context.Context, chunks []*domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO chunks (` + chunkColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO UPDATE SET
				content = EXCLUDED.content,
				position = EXCLUDED.position,
				page_number = EXCLUDED.page_number,
				embedding = EXCLUDED.embedding,
				metadata = EXCLUDED.metadata
		`

		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, chunk := range chunks {
			metadataJSON, err := json.Marshal(chunk.Metadata)
			if err != nil {
				return err
			}

			_, err = stmt.ExecContext(ctx,
				chunk.ID,
				chunk.DocumentID,
				chunk.UserID,
				chunk.Content,
				chunk.Index,
				chunk.PageNumber,
				pq.Array(chunk.Embedding),
				metadataJSON,
				chunk.CreatedAt,
			)
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// Search retrieves chunks whose content matches the filter
func (s *ChunkStore) Search(ctx context.Context, filter driven.ChunkFilter, limit int) ([]*domain.Chunk, error) {
	query := `
		SELECT ` + chunkColumns + `
		FROM chunks
		WHERE user_id = $1 AND content ILIKE $2
		ORDER BY created_at DESC, id
		LIMIT $3
	`

	rows, err := s.db.QueryContext(ctx, query, filter.OwnerID, "%"+escapeLike(filter.TextContains)+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectChunks(rows)
}

// GetByDocument retrieves all chunks for a document ordered by index
func (s *ChunkStore) GetByDocument(ctx context.Context, documentID string) ([]*domain.Chunk, error) {
	query := `
		SELECT ` + chunkColumns + `
		FROM chunks
		WHERE document_id = $1
		ORDER BY position
	`

	rows, err := s.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectChunks(rows)
}

// DeleteByDocument deletes all chunks for a document
func (s *ChunkStore) DeleteByDocument(ctx context.Context, documentID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM chunks WHERE document_id = $1", documentID)
	return err
}

func scanChunk(row rowScanner) (*domain.Chunk, error) {
	var chunk domain.Chunk
	var embedding pq.Float32Array
	var metadataJSON []byte

	err := row.Scan(
		&chunk.ID,
		&chunk.DocumentID,
		&chunk.UserID,
		&chunk.Content,
		&chunk.Index,
		&chunk.PageNumber,
		&embedding,
		&metadataJSON,
		&chunk.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	chunk.Embedding = []float32(embedding)
	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &chunk.Metadata); err != nil {
			return nil, err
		}
	}

	return &chunk, nil
}

func collectChunks(rows *sql.Rows) ([]*domain.Chunk, error) {
	var chunks []*domain.Chunk
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}
	return chunks, rows.Err()
}
