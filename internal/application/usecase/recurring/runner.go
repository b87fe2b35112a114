package recurring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// RunnerConfig holds the fan-out and retry settings of a run.
type RunnerConfig struct {
	Concurrency  int
	MaxAttempts  int
	RetryBackoff time.Duration
}

// DefaultRunnerConfig returns the default runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Concurrency:  10,
		MaxAttempts:  3,
		RetryBackoff: time.Second,
	}
}

// Summary reports the result of one run.
type Summary struct {
	Due       int `json:"due"`
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// Runner finds due templates and processes them concurrently.
type Runner struct {
	scheduler *Scheduler
	worker    *Worker
	config    RunnerConfig
	now       func() time.Time
}

// NewRunner creates a new Runner instance.
func NewRunner(scheduler *Scheduler, worker *Worker, config RunnerConfig) *Runner {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 1
	}
	return &Runner{
		scheduler: scheduler,
		worker:    worker,
		config:    config,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Run processes every template due today. A nil userID covers all users.
// Unit failures are counted, not returned; only the scan itself can fail the run.
func (r *Runner) Run(ctx context.Context, userID *uuid.UUID) (*Summary, error) {
	today := r.now()

	units, err := r.scheduler.FindDue(ctx, today, userID)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Due: len(units)}
	if len(units) == 0 {
		slog.Info("No recurring templates due", "date", today.Format(time.DateOnly))
		return summary, nil
	}

	var processed, skipped, failed atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(r.config.Concurrency)
	for _, unit := range units {
		unit := unit
		g.Go(func() error {
			outcome, err := r.processWithRetry(ctx, unit)
			switch {
			case err != nil:
				failed.Add(1)
			case outcome == OutcomeProcessed:
				processed.Add(1)
			default:
				skipped.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	summary.Processed = int(processed.Load())
	summary.Skipped = int(skipped.Load())
	summary.Failed = int(failed.Load())

	slog.Info("Recurring run finished",
		"due", summary.Due,
		"processed", summary.Processed,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)
	return summary, nil
}

// processWithRetry retries transient failures with a linear backoff.
// Validation and not-found errors are permanent and returned at once.
func (r *Runner) processWithRetry(ctx context.Context, unit entity.RecurringUnit) (Outcome, error) {
	logger := slog.With("template_id", unit.TemplateID, "due_date", unit.DueDate.Format(time.DateOnly))

	var lastErr error
	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		outcome, err := r.worker.Process(ctx, unit)
		if err == nil {
			return outcome, nil
		}
		lastErr = err

		switch domainerror.KindOf(err) {
		case domainerror.KindValidation, domainerror.KindNotFound:
			logger.Warn("Skipping recurring template", "error", err)
			return "", err
		}

		if attempt == r.config.MaxAttempts {
			break
		}
		logger.Info("Retrying recurring template", "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(r.config.RetryBackoff * time.Duration(attempt)):
		}
	}

	logger.Error("Failed to process recurring template", "attempts", r.config.MaxAttempts, "error", lastErr)
	return "", lastErr
}
