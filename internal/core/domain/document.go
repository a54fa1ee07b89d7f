package domain

import "time"

// Status tracks a contract's lifecycle
type Status string

const (
	StatusActive     Status = "Active"
	StatusRenewalDue Status = "Renewal Due"
	StatusExpired    Status = "Expired"
)

// RiskLevel is the qualitative risk assessment of a contract.
// It is assigned by the uploader or an external review process,
// never computed from document content.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Document represents one uploaded contract file and its metadata.
// The identifier is immutable once assigned; documents are created at
// ingestion and never mutated afterwards except for lifecycle status.
type Document struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	Filename     string     `json:"filename"`
	ContractName string     `json:"contract_name"`
	Parties      string     `json:"parties,omitempty"`
	UploadedAt   time.Time  `json:"uploaded_at"`
	ExpiryAt     *time.Time `json:"expiry_at,omitempty"`
	Status       Status     `json:"status"`
	Risk         RiskLevel  `json:"risk"`
	FileSize     int64      `json:"file_size,omitempty"`
	FileType     string     `json:"file_type,omitempty"`
}

// IsExpired reports whether the document's expiry date has passed.
// Documents without an expiry date never expire.
func (d *Document) IsExpired(now time.Time) bool {
	return d.ExpiryAt != nil && !d.ExpiryAt.After(now)
}

// ExpiresWithin reports whether the document expires inside the given window.
func (d *Document) ExpiresWithin(now time.Time, window time.Duration) bool {
	return d.ExpiryAt != nil && d.ExpiryAt.After(now) && !d.ExpiryAt.After(now.Add(window))
}

// Chunk represents one fixed-size slice of a document's text content.
// For a given document, indices form a contiguous sequence starting at 0
// and concatenating chunk contents in index order reconstructs the
// original text exactly. Chunks are written once and never mutated.
type Chunk struct {
	ID         string            `json:"id"`
	DocumentID string            `json:"document_id"`
	UserID     string            `json:"user_id"`
	Content    string            `json:"content"`
	Index      int               `json:"index"`
	PageNumber int               `json:"page_number,omitempty"`
	Embedding  []float32         `json:"embedding,omitempty"` // stored for future semantic search, not read
	Metadata   map[string]string `json:"metadata,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// DocumentWithChunks combines a document with its ordered chunks
type DocumentWithChunks struct {
	Document *Document `json:"document"`
	Chunks   []*Chunk  `json:"chunks"`
}
