package audit

import (
	"context"
	"log/slog"
	"time"
)

// RetentionWorker periodically purges old audit events.
type RetentionWorker struct {
	store     *Store
	retention time.Duration
	interval  time.Duration
	logger    *slog.Logger
}

// NewRetentionWorker creates a worker keeping retentionDays of history,
// sweeping daily.
func NewRetentionWorker(store *Store, retentionDays int, logger *slog.Logger) *RetentionWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &RetentionWorker{
		store:     store,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		interval:  24 * time.Hour,
		logger:    logger,
	}
}

// Run sweeps until the context is cancelled. A non-positive retention
// disables the worker.
func (w *RetentionWorker) Run(ctx context.Context) {
	if w.store == nil || w.retention <= 0 {
		w.logger.Info("audit retention disabled")
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("audit retention worker started",
		"retentionDays", int(w.retention.Hours()/24))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("audit retention worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *RetentionWorker) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-w.retention)
	removed, err := w.store.Purge(ctx, cutoff)
	if err != nil {
		w.logger.Error("audit retention sweep failed", "error", err)
		return
	}
	if removed > 0 {
		w.logger.Info("audit retention sweep", "removed", removed)
	}
}
