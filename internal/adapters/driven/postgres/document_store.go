package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/covenant-labs/covenant-core/internal/core/domain"
	"github.com/covenant-labs/covenant-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DocumentStore = (*DocumentStore)(nil)

const documentColumns = "id, user_id, filename, contract_name, parties, uploaded_at, expiry_at, status, risk, file_size, file_type"

// DocumentStore implements driven.DocumentStore using PostgreSQL
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a new DocumentStore
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// Insert creates a document
func (s *DocumentStore) Insert(ctx context.Context, doc *domain.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := s.db.ExecContext(ctx, query,
		doc.ID,
		doc.UserID,
		doc.Filename,
		doc.ContractName,
		doc.Parties,
		doc.UploadedAt,
		NullTime(doc.ExpiryAt),
		doc.Status,
		doc.Risk,
		doc.FileSize,
		doc.FileType,
	)
	if err, ok := err.(*pq.Error); ok && err.Code.Name() == "unique_violation" {
		return domain.ErrAlreadyExists
	}
	return err
}

// Get retrieves a document by ID
func (s *DocumentStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return scanDocument(s.db.QueryRowContext(ctx, query, id))
}

// GetByIDs retrieves multiple documents in one query
func (s *DocumentStore) GetByIDs(ctx context.Context, ids []string) ([]*domain.Document, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = ANY($1)`
	rows, err := s.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDocuments(rows)
}

// List retrieves an owner's documents newest-first with pagination
func (s *DocumentStore) List(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE user_id = $1
		ORDER BY uploaded_at DESC, id
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDocuments(rows)
}

// Search retrieves documents matching the filter, newest-first.
// The substring filters are ORed together; ILIKE gives the
// case-insensitive match.
func (s *DocumentStore) Search(ctx context.Context, filter driven.DocumentFilter, limit int) ([]*domain.Document, error) {
	conds := []string{"user_id = $1"}
	args := []interface{}{filter.OwnerID}

	var matches []string
	addMatch := func(column, needle string) {
		if needle == "" {
			return
		}
		args = append(args, "%"+escapeLike(needle)+"%")
		matches = append(matches, column+" ILIKE $"+itoa(len(args)))
	}
	addMatch("contract_name", filter.NameContains)
	addMatch("parties", filter.PartiesContains)
	addMatch("filename", filter.FilenameContains)
	if len(matches) > 0 {
		conds = append(conds, "("+strings.Join(matches, " OR ")+")")
	}

	if len(filter.IDs) > 0 {
		args = append(args, pq.Array(filter.IDs))
		conds = append(conds, "id = ANY($"+itoa(len(args))+")")
	}

	args = append(args, limit)
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY uploaded_at DESC, id
		LIMIT $` + itoa(len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDocuments(rows)
}

// Delete deletes a document. Chunks cascade via the schema.
func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count returns document count for an owner
func (s *DocumentStore) Count(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents WHERE user_id = $1", ownerID).Scan(&count)
	return count, err
}

// UpdateStatus updates a document's lifecycle status
func (s *DocumentStore) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	result, err := s.db.ExecContext(ctx, "UPDATE documents SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListWithExpiryBefore retrieves documents whose expiry date falls
// before the cutoff, excluding the given status
func (s *DocumentStore) ListWithExpiryBefore(ctx context.Context, cutoff time.Time, excludeStatus domain.Status) ([]*domain.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE expiry_at IS NOT NULL AND expiry_at < $1 AND status <> $2
		ORDER BY expiry_at
	`

	rows, err := s.db.QueryContext(ctx, query, cutoff, excludeStatus)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDocuments(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(row rowScanner) (*domain.Document, error) {
	var doc domain.Document
	var expiry sql.NullTime

	err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.Filename,
		&doc.ContractName,
		&doc.Parties,
		&doc.UploadedAt,
		&expiry,
		&doc.Status,
		&doc.Risk,
		&doc.FileSize,
		&doc.FileType,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	doc.ExpiryAt = TimePtr(expiry)
	return &doc, nil
}

func collectDocuments(rows *sql.Rows) ([]*domain.Document, error) {
	var docs []*domain.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// escapeLike escapes LIKE metacharacters so user input matches literally
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
