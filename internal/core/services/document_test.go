package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/covenant-labs/covenant-core/internal/core/domain"
	"github.com/covenant-labs/covenant-core/internal/core/ports/driven/mocks"
	"github.com/covenant-labs/covenant-core/internal/core/ports/driving"
)

type documentFixture struct {
	docStore   *mocks.MockDocumentStore
	chunkStore *mocks.MockChunkStore
	blobStore  *mocks.MockBlobStore
	svc        driving.DocumentService
}

func newDocumentFixture() *documentFixture {
	f := &documentFixture{
		docStore:   mocks.NewMockDocumentStore(),
		chunkStore: mocks.NewMockChunkStore(),
		blobStore:  mocks.NewMockBlobStore(),
	}
	f.svc = NewDocumentService(f.docStore, f.chunkStore, f.blobStore, nil)
	return f
}

func TestDocumentService_Get(t *testing.T) {
	f := newDocumentFixture()
	seedDocument(t, f.docStore, &domain.Document{ID: "doc-1", UserID: "user-1", ContractName: "MSA"})

	doc, err := f.svc.Get(context.Background(), "user-1", "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ContractName != "MSA" {
		t.Errorf("unexpected document %+v", doc)
	}
}

func TestDocumentService_GetEnforcesOwnership(t *testing.T) {
	f := newDocumentFixture()
	seedDocument(t, f.docStore, &domain.Document{ID: "doc-1", UserID: "user-1"})

	_, err := f.svc.Get(context.Background(), "user-2", "doc-1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign document, got %v", err)
	}

	_, err = f.svc.Get(context.Background(), "", "doc-1")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for missing owner, got %v", err)
	}
}

func TestDocumentService_GetWithChunks(t *testing.T) {
	f := newDocumentFixture()
	seedDocument(t, f.docStore, &domain.Document{ID: "doc-1", UserID: "user-1"})
	seedChunk(t, f.chunkStore, &domain.Chunk{ID: "c-2", DocumentID: "doc-1", UserID: "user-1", Index: 1, Content: "second"})
	seedChunk(t, f.chunkStore, &domain.Chunk{ID: "c-1", DocumentID: "doc-1", UserID: "user-1", Index: 0, Content: "first"})

	dwc, err := f.svc.GetWithChunks(context.Background(), "user-1", "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dwc.Chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(dwc.Chunks))
	}
	if dwc.Chunks[0].Content != "first" || dwc.Chunks[1].Content != "second" {
		t.Error("chunks not ordered by index")
	}
}

func TestDocumentService_Delete(t *testing.T) {
	f := newDocumentFixture()
	doc := &domain.Document{ID: "doc-1", UserID: "user-1", Filename: "a.txt"}
	seedDocument(t, f.docStore, doc)
	seedChunk(t, f.chunkStore, &domain.Chunk{ID: "c-1", DocumentID: "doc-1", UserID: "user-1"})

	key := "user-1/doc-1/a.txt"
	if err := f.blobStore.Put(context.Background(), key, strings.NewReader("bytes"), 5, "text/plain"); err != nil {
		t.Fatalf("seed blob: %v", err)
	}

	if err := f.svc.Delete(context.Background(), "user-1", "doc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.docStore.Get(context.Background(), "doc-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Error("document record still present")
	}
	chunks, _ := f.chunkStore.GetByDocument(context.Background(), "doc-1")
	if len(chunks) != 0 {
		t.Errorf("expected chunks removed, found %d", len(chunks))
	}
	if f.blobStore.Has(key) {
		t.Error("stored file still present")
	}
}

func TestDocumentService_DeleteForeignDocument(t *testing.T) {
	f := newDocumentFixture()
	seedDocument(t, f.docStore, &domain.Document{ID: "doc-1", UserID: "user-1"})

	if err := f.svc.Delete(context.Background(), "user-2", "doc-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := f.docStore.Get(context.Background(), "doc-1"); err != nil {
		t.Error("document was deleted by a non-owner")
	}
}

func TestDocumentService_Download(t *testing.T) {
	f := newDocumentFixture()
	doc := &domain.Document{ID: "doc-1", UserID: "user-1", Filename: "a.txt"}
	seedDocument(t, f.docStore, doc)
	if err := f.blobStore.Put(context.Background(), "user-1/doc-1/a.txt", strings.NewReader("contents"), 8, "text/plain"); err != nil {
		t.Fatalf("seed blob: %v", err)
	}

	r, got, err := f.svc.Download(context.Background(), "user-1", "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Close()

	data, _ := io.ReadAll(r)
	if string(data) != "contents" {
		t.Errorf("unexpected file contents %q", data)
	}
	if got.ID != "doc-1" {
		t.Errorf("unexpected document %+v", got)
	}
}

func TestDocumentService_ListDefaults(t *testing.T) {
	f := newDocumentFixture()
	for i := 0; i < 3; i++ {
		seedDocument(t, f.docStore, &domain.Document{
			ID: "doc-" + string(rune('a'+i)), UserID: "user-1",
		})
	}

	docs, err := f.svc.List(context.Background(), "user-1", 0, -5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 3 {
		t.Errorf("expected 3 documents with defaulted paging, got %d", len(docs))
	}
}
