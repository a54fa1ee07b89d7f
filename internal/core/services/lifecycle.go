package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/covenant-labs/covenant-core/internal/core/domain"
	"github.com/covenant-labs/covenant-core/internal/core/ports/driven"
	"github.com/covenant-labs/covenant-core/internal/core/ports/driving"
)

// renewalWindow is how far ahead of expiry a contract is flagged for renewal
const renewalWindow = 30 * 24 * time.Hour

// Ensure lifecycleService implements LifecycleService
var _ driving.LifecycleService = (*lifecycleService)(nil)

// lifecycleService moves contract statuses along expiry dates
type lifecycleService struct {
	documentStore driven.DocumentStore
	logger        *slog.Logger
	now           func() time.Time
}

// NewLifecycleService creates a new LifecycleService
func NewLifecycleService(documentStore driven.DocumentStore, logger *slog.Logger) driving.LifecycleService {
	if logger == nil {
		logger = slog.Default()
	}
	return &lifecycleService{
		documentStore: documentStore,
		logger:        logger,
		now:           time.Now,
	}
}

// SweepExpiries marks past-expiry contracts Expired and contracts whose
// expiry falls inside the renewal window Renewal Due. Statuses only move
// forward; an Expired contract is never pulled back to Renewal Due.
func (s *lifecycleService) SweepExpiries(ctx context.Context) (*driving.SweepReport, error) {
	now := s.now()
	cutoff := now.Add(renewalWindow)

	docs, err := s.documentStore.ListWithExpiryBefore(ctx, cutoff, domain.StatusExpired)
	if err != nil {
		return nil, err
	}

	report := &driving.SweepReport{}
	for _, doc := range docs {
		var next domain.Status
		switch {
		case doc.IsExpired(now):
			next = domain.StatusExpired
		case doc.Status != domain.StatusRenewalDue:
			next = domain.StatusRenewalDue
		default:
			continue
		}

		if err := s.documentStore.UpdateStatus(ctx, doc.ID, next); err != nil {
			s.logger.Warn("status update failed", "document_id", doc.ID, "status", next, "error", err)
			continue
		}
		switch next {
		case domain.StatusExpired:
			report.Expired++
		case domain.StatusRenewalDue:
			report.RenewalDue++
		}
	}

	if report.Expired > 0 || report.RenewalDue > 0 {
		s.logger.Info("expiry sweep complete",
			"expired", report.Expired, "renewal_due", report.RenewalDue)
	}
	return report, nil
}
