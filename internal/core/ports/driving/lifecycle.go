package driving

import "context"

// SweepReport summarizes one expiry sweep
type SweepReport struct {
	Expired    int `json:"expired"`
	RenewalDue int `json:"renewal_due"`
}

// LifecycleService keeps contract statuses in step with their expiry dates
type LifecycleService interface {
	// SweepExpiries marks past-expiry contracts Expired and contracts
	// inside the renewal window Renewal Due
	SweepExpiries(ctx context.Context) (*SweepReport, error)
}
