package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/covenant-labs/covenant-core/internal/core/ports/driven"
	"github.com/covenant-labs/covenant-core/internal/core/ports/driving"
)

// sweepLockName serializes sweeps across instances sharing a store.
const sweepLockName = "expiry-sweep"

// Worker periodically re-evaluates contract statuses against their
// expiry dates. A distributed lock ensures that in a multi-instance
// deployment only one instance sweeps per tick.
type Worker struct {
	lifecycle driving.LifecycleService
	lock      driven.DistributedLock
	logger    *slog.Logger

	// Configuration
	interval time.Duration
	lockTTL  time.Duration

	// Internal state
	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// WorkerConfig holds configuration for the worker.
type WorkerConfig struct {
	Lifecycle driving.LifecycleService
	Lock      driven.DistributedLock
	Logger    *slog.Logger
	Interval  time.Duration // Time between sweeps
	LockTTL   time.Duration // How long the sweep lock is held
}

// NewWorker creates a new lifecycle worker.
func NewWorker(cfg WorkerConfig) *Worker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Hour
	}

	lockTTL := cfg.LockTTL
	if lockTTL <= 0 {
		lockTTL = 5 * time.Minute
	}

	return &Worker{
		lifecycle: cfg.Lifecycle,
		lock:      cfg.Lock,
		logger:    logger,
		interval:  interval,
		lockTTL:   lockTTL,
	}
}

// Start begins the sweep loop.
// It runs until Stop is called or context is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	w.logger.Info("lifecycle worker starting",
		"interval", w.interval,
		"lock_ttl", w.lockTTL,
	)

	go func() {
		defer close(w.doneCh)
		w.sweepLoop(ctx)
	}()

	return nil
}

// Stop gracefully stops the worker.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	close(w.stopCh)
	w.mu.Unlock()

	// Wait for the loop to finish
	<-w.doneCh

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()

	w.logger.Info("lifecycle worker stopped")
}

// Wait blocks until the worker stops.
func (w *Worker) Wait() {
	<-w.doneCh
}

// sweepLoop runs one sweep immediately, then one per interval.
func (w *Worker) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.runSweep(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("worker context cancelled")
			return
		case <-w.stopCh:
			w.logger.Info("worker stop signal received")
			return
		case <-ticker.C:
			w.runSweep(ctx)
		}
	}
}

// runSweep executes a single lock-guarded sweep.
func (w *Worker) runSweep(ctx context.Context) {
	if w.lock != nil {
		acquired, err := w.lock.Acquire(ctx, sweepLockName, w.lockTTL)
		if err != nil {
			w.logger.Error("failed to acquire sweep lock", "error", err)
			return
		}
		if !acquired {
			w.logger.Debug("sweep lock held elsewhere, skipping")
			return
		}
		defer func() {
			if err := w.lock.Release(ctx, sweepLockName); err != nil {
				w.logger.Warn("failed to release sweep lock", "error", err)
			}
		}()
	}

	startTime := time.Now()
	report, err := w.lifecycle.SweepExpiries(ctx)
	if err != nil {
		w.logger.Error("expiry sweep failed",
			"duration", time.Since(startTime),
			"error", err,
		)
		return
	}

	w.logger.Info("expiry sweep completed",
		"duration", time.Since(startTime),
		"expired", report.Expired,
		"renewal_due", report.RenewalDue,
	)
}

// Health returns health status of the worker.
type Health struct {
	Running    bool   `json:"running"`
	LockHealth bool   `json:"lock_health"`
	Error      string `json:"error,omitempty"`
}

// Health returns the health status of the worker.
func (w *Worker) Health(ctx context.Context) Health {
	w.mu.RLock()
	running := w.running
	w.mu.RUnlock()

	health := Health{
		Running: running,
	}

	if w.lock == nil {
		health.LockHealth = true
		return health
	}

	if err := w.lock.Ping(ctx); err != nil {
		health.LockHealth = false
		health.Error = err.Error()
	} else {
		health.LockHealth = true
	}

	return health
}
