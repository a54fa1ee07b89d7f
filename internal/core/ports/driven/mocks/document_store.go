package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/covenant-labs/covenant-core/internal/core/domain"
	"github.com/covenant-labs/covenant-core/internal/core/ports/driven"
)

// MockDocumentStore is a mock implementation of DocumentStore for testing
type MockDocumentStore struct {
	mu        sync.RWMutex
	documents map[string]*domain.Document

	// Error injection
	insertErr   error
	searchErr   error
	getByIDsErr error

	// Call counters
	SearchCalls   int
	GetByIDsCalls int
}

// NewMockDocumentStore creates a new MockDocumentStore
func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{
		documents: make(map[string]*domain.Document),
	}
}

// FailInsert makes subsequent Insert calls return err
func (m *MockDocumentStore) FailInsert(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertErr = err
}

// FailSearch makes subsequent Search calls return err
func (m *MockDocumentStore) FailSearch(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchErr = err
}

// FailGetByIDs makes subsequent GetByIDs calls return err
func (m *MockDocumentStore) FailGetByIDs(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getByIDsErr = err
}

func (m *MockDocumentStore) Insert(ctx context.Context, doc *domain.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	if _, ok := m.documents[doc.ID]; ok {
		return domain.ErrAlreadyExists
	}
	m.documents[doc.ID] = doc
	return nil
}

func (m *MockDocumentStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func (m *MockDocumentStore) GetByIDs(ctx context.Context, ids []string) ([]*domain.Document, error) {
	m.mu.Lock()
	m.GetByIDsCalls++
	err := m.getByIDsErr
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	var docs []*domain.Document
	for _, id := range ids {
		if doc, ok := m.documents[id]; ok {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (m *MockDocumentStore) List(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	docs := m.ownedBy(ownerID)
	if offset >= len(docs) {
		return []*domain.Document{}, nil
	}
	end := offset + limit
	if end > len(docs) {
		end = len(docs)
	}
	return docs[offset:end], nil
}

func (m *MockDocumentStore) Search(ctx context.Context, filter driven.DocumentFilter, limit int) ([]*domain.Document, error) {
	m.mu.Lock()
	m.SearchCalls++
	err := m.searchErr
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var idSet map[string]bool
	if len(filter.IDs) > 0 {
		idSet = make(map[string]bool, len(filter.IDs))
		for _, id := range filter.IDs {
			idSet[id] = true
		}
	}

	var results []*domain.Document
	for _, doc := range m.ownedBy(filter.OwnerID) {
		if idSet != nil && !idSet[doc.ID] {
			continue
		}
		if !matchesFilter(doc, filter) {
			continue
		}
		results = append(results, doc)
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}

func matchesFilter(doc *domain.Document, filter driven.DocumentFilter) bool {
	if filter.NameContains == "" && filter.PartiesContains == "" && filter.FilenameContains == "" {
		return true
	}
	if filter.NameContains != "" && containsFold(doc.ContractName, filter.NameContains) {
		return true
	}
	if filter.PartiesContains != "" && containsFold(doc.Parties, filter.PartiesContains) {
		return true
	}
	if filter.FilenameContains != "" && containsFold(doc.Filename, filter.FilenameContains) {
		return true
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func (m *MockDocumentStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.documents[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.documents, id)
	return nil
}

func (m *MockDocumentStore) Count(ctx context.Context, ownerID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.ownedBy(ownerID)), nil
}

func (m *MockDocumentStore) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.documents[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.Status = status
	return nil
}

func (m *MockDocumentStore) ListWithExpiryBefore(ctx context.Context, cutoff time.Time, excludeStatus domain.Status) ([]*domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var docs []*domain.Document
	for _, doc := range m.documents {
		if doc.ExpiryAt == nil || doc.Status == excludeStatus {
			continue
		}
		if doc.ExpiryAt.Before(cutoff) {
			docs = append(docs, doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

// ownedBy returns an owner's documents newest-first. Caller holds the lock.
func (m *MockDocumentStore) ownedBy(ownerID string) []*domain.Document {
	var docs []*domain.Document
	for _, doc := range m.documents {
		if doc.UserID == ownerID {
			docs = append(docs, doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].UploadedAt.Equal(docs[j].UploadedAt) {
			return docs[i].ID < docs[j].ID
		}
		return docs[i].UploadedAt.After(docs[j].UploadedAt)
	})
	return docs
}
