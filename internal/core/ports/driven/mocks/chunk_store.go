package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/covenant-labs/covenant-core/internal/core/domain"
	"github.com/covenant-labs/covenant-core/internal/core/ports/driven"
)

// MockChunkStore is a mock implementation of ChunkStore for testing
type MockChunkStore struct {
	mu     sync.RWMutex
	chunks map[string]*domain.Chunk
	byDoc  map[string][]*domain.Chunk

	// Error injection
	saveBatchErr error
	searchErr    error

	// Call counters
	SearchCalls    int
	SaveBatchCalls int
}

// NewMockChunkStore creates a new MockChunkStore
func NewMockChunkStore() *MockChunkStore {
	return &MockChunkStore{
		chunks: make(map[string]*domain.Chunk),
		byDoc:  make(map[string][]*domain.Chunk),
	}
}

// FailSaveBatch makes subsequent SaveBatch calls return err
func (m *MockChunkStore) FailSaveBatch(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveBatchErr = err
}

// FailSearch makes subsequent Search calls return err
func (m *MockChunkStore) FailSearch(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchErr = err
}

func (m *MockChunkStore) SaveBatch(ctx context.Context, chunks []*domain.Chunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveBatchCalls++
	if m.saveBatchErr != nil {
		return m.saveBatchErr
	}
	for _, chunk := range chunks {
		m.chunks[chunk.ID] = chunk
		m.byDoc[chunk.DocumentID] = append(m.byDoc[chunk.DocumentID], chunk)
	}
	return nil
}

func (m *MockChunkStore) Search(ctx context.Context, filter driven.ChunkFilter, limit int) ([]*domain.Chunk, error) {
	m.mu.Lock()
	m.SearchCalls++
	err := m.searchErr
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var ids []string
	for id := range m.chunks {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var results []*domain.Chunk
	needle := strings.ToLower(filter.TextContains)
	for _, id := range ids {
		chunk := m.chunks[id]
		if chunk.UserID != filter.OwnerID {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(chunk.Content), needle) {
			continue
		}
		results = append(results, chunk)
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}

func (m *MockChunkStore) GetByDocument(ctx context.Context, documentID string) ([]*domain.Chunk, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	chunks := append([]*domain.Chunk{}, m.byDoc[documentID]...)
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].Index < chunks[j].Index })
	return chunks, nil
}

func (m *MockChunkStore) DeleteByDocument(ctx context.Context, documentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, chunk := range m.byDoc[documentID] {
		delete(m.chunks, chunk.ID)
	}
	delete(m.byDoc, documentID)
	return nil
}
