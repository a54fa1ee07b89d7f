package services

import (
	"context"
	"testing"
	"time"

	"github.com/covenant-labs/covenant-core/internal/core/domain"
	"github.com/covenant-labs/covenant-core/internal/core/ports/driven/mocks"
)

func TestSweepExpiries(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	inWindow := now.Add(10 * 24 * time.Hour)
	farOut := now.Add(90 * 24 * time.Hour)

	docStore := mocks.NewMockDocumentStore()
	svc := NewLifecycleService(docStore, nil).(*lifecycleService)
	svc.now = func() time.Time { return now }

	seedDocument(t, docStore, &domain.Document{ID: "expired", UserID: "u", ExpiryAt: &past})
	seedDocument(t, docStore, &domain.Document{ID: "renewing", UserID: "u", ExpiryAt: &inWindow})
	seedDocument(t, docStore, &domain.Document{ID: "healthy", UserID: "u", ExpiryAt: &farOut})
	seedDocument(t, docStore, &domain.Document{ID: "open-ended", UserID: "u"})

	report, err := svc.SweepExpiries(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Expired != 1 {
		t.Errorf("expected 1 expired, got %d", report.Expired)
	}
	if report.RenewalDue != 1 {
		t.Errorf("expected 1 renewal due, got %d", report.RenewalDue)
	}

	assertStatus := func(id string, want domain.Status) {
		t.Helper()
		doc, err := docStore.Get(context.Background(), id)
		if err != nil {
			t.Fatalf("get %s: %v", id, err)
		}
		if doc.Status != want {
			t.Errorf("%s: expected status %s, got %s", id, want, doc.Status)
		}
	}
	assertStatus("expired", domain.StatusExpired)
	assertStatus("renewing", domain.StatusRenewalDue)
	assertStatus("healthy", domain.StatusActive)
	assertStatus("open-ended", domain.StatusActive)
}

func TestSweepExpiries_Idempotent(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	inWindow := now.Add(5 * 24 * time.Hour)

	docStore := mocks.NewMockDocumentStore()
	svc := NewLifecycleService(docStore, nil).(*lifecycleService)
	svc.now = func() time.Time { return now }

	seedDocument(t, docStore, &domain.Document{ID: "doc-1", UserID: "u", ExpiryAt: &inWindow})

	if _, err := svc.SweepExpiries(context.Background()); err != nil {
		t.Fatalf("first sweep: %v", err)
	}
	report, err := svc.SweepExpiries(context.Background())
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if report.RenewalDue != 0 {
		t.Errorf("second sweep re-flagged %d documents", report.RenewalDue)
	}
}

func TestSweepExpiries_ExpiredStaysExpired(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)

	docStore := mocks.NewMockDocumentStore()
	svc := NewLifecycleService(docStore, nil).(*lifecycleService)
	svc.now = func() time.Time { return now }

	doc := &domain.Document{ID: "doc-1", UserID: "u", ExpiryAt: &past, Status: domain.StatusExpired}
	seedDocument(t, docStore, doc)

	report, err := svc.SweepExpiries(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Expired != 0 {
		t.Errorf("already-expired document was counted again: %d", report.Expired)
	}
}
