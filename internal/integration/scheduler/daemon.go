// Package scheduler runs background jobs on a timer.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/application/usecase/recurring"
)

// RecurringDaemon triggers the recurring run on a fixed interval.
// Only one process runs it at a time, guarded by the job locker.
type RecurringDaemon struct {
	runner   *recurring.Runner
	locker   adapter.JobLocker
	interval time.Duration
	lockTTL  time.Duration
}

// DaemonConfig holds configuration for the recurring daemon.
type DaemonConfig struct {
	Interval time.Duration
	LockTTL  time.Duration
}

// DefaultDaemonConfig returns the default daemon configuration.
func DefaultDaemonConfig() DaemonConfig {
	return DaemonConfig{
		Interval: time.Hour,
		LockTTL:  10 * time.Minute,
	}
}

// NewRecurringDaemon creates a new RecurringDaemon.
func NewRecurringDaemon(runner *recurring.Runner, locker adapter.JobLocker, config DaemonConfig) *RecurringDaemon {
	return &RecurringDaemon{
		runner:   runner,
		locker:   locker,
		interval: config.Interval,
		lockTTL:  config.LockTTL,
	}
}

// Start runs once immediately and then on every tick. It blocks until the context is cancelled.
func (d *RecurringDaemon) Start(ctx context.Context) {
	slog.Info("Recurring daemon started", "interval", d.interval)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Recurring daemon shutting down")
			return
		case <-ticker.C:
			d.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single locked run. It reports whether the run happened.
func (d *RecurringDaemon) RunOnce(ctx context.Context) bool {
	token, acquired, err := d.locker.Acquire(ctx, recurring.GlobalLockKey, d.lockTTL)
	if err != nil {
		slog.Error("Failed to acquire recurring lock", "error", err)
		return false
	}
	if !acquired {
		slog.Info("Recurring run already in progress elsewhere, skipping")
		return false
	}
	defer func() {
		if err := d.locker.Release(context.WithoutCancel(ctx), recurring.GlobalLockKey, token); err != nil {
			slog.Warn("Failed to release recurring lock", "error", err)
		}
	}()

	if _, err := d.runner.Run(ctx, nil); err != nil {
		slog.Error("Recurring run failed", "error", err)
	}
	return true
}
