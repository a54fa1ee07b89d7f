package domain

// ResultType discriminates how a search result was found
type ResultType string

const (
	ResultTypeDocument ResultType = "document" // matched on document metadata
	ResultTypeChunk    ResultType = "chunk"    // matched on chunk content
)

// SearchResult is a unified, search-time view over either a matched
// document or a matched chunk. Results are never persisted. A document
// may appear once as a document result and several more times as chunk
// results within the same response; no deduplication is performed.
type SearchResult struct {
	DocumentID   string     `json:"document_id"`
	ContractName string     `json:"contract_name"`
	Content      string     `json:"content"`
	ChunkIndex   *int       `json:"chunk_index,omitempty"`
	Filename     string     `json:"filename,omitempty"`
	Parties      string     `json:"parties,omitempty"`
	Status       Status     `json:"status,omitempty"`
	Risk         RiskLevel  `json:"risk,omitempty"`
	Type         ResultType `json:"type"`
}

// DocumentSummary synthesizes the content string for a document-type
// result: "Contract: {name}", with the parties appended when present.
func DocumentSummary(doc *Document) string {
	content := "Contract: " + doc.ContractName
	if doc.Parties != "" {
		content += " | Parties: " + doc.Parties
	}
	return content
}

// FallbackSummary synthesizes the content string for a fallback-stage
// result, stating which metadata field matched. Parties wins when both
// are present.
func FallbackSummary(doc *Document) string {
	if doc.Parties != "" {
		return "Found in parties: " + doc.Parties
	}
	return "Found in filename: " + doc.Filename
}

// NewDocumentResult builds a document-type result from a matched document.
func NewDocumentResult(doc *Document, content string) SearchResult {
	return SearchResult{
		DocumentID:   doc.ID,
		ContractName: doc.ContractName,
		Content:      content,
		Filename:     doc.Filename,
		Parties:      doc.Parties,
		Status:       doc.Status,
		Risk:         doc.Risk,
		Type:         ResultTypeDocument,
	}
}

// NewChunkResult builds a chunk-type result from a matched chunk and its
// resolved parent document. The chunk's own text becomes the content.
func NewChunkResult(chunk *Chunk, doc *Document) SearchResult {
	idx := chunk.Index
	return SearchResult{
		DocumentID:   chunk.DocumentID,
		ContractName: doc.ContractName,
		Content:      chunk.Content,
		ChunkIndex:   &idx,
		Filename:     doc.Filename,
		Parties:      doc.Parties,
		Status:       doc.Status,
		Risk:         doc.Risk,
		Type:         ResultTypeChunk,
	}
}
