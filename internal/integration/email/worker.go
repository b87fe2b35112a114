// Package email provides email sending functionality.
package email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/integration/email/templates"
)

// Worker processes the email queue and sends emails.
type Worker struct {
	queue        adapter.EmailQueueRepository
	sender       adapter.EmailSender
	renderer     *templates.Renderer
	pollInterval time.Duration
	batchSize    int
	retention    time.Duration
	staleAfter   time.Duration
	lastCleanup  time.Time
}

// WorkerConfig holds configuration for the email worker.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
	// Retention is how long sent jobs are kept before cleanup. Zero disables cleanup.
	Retention time.Duration
	// StaleAfter is how long a job may stay in processing before it is reclaimed.
	// Zero disables reclaiming.
	StaleAfter time.Duration
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 5 * time.Second,
		BatchSize:    10,
		Retention:    30 * 24 * time.Hour,
		StaleAfter:   10 * time.Minute,
	}
}

// NewWorker creates a new email worker.
func NewWorker(queue adapter.EmailQueueRepository, sender adapter.EmailSender, renderer *templates.Renderer, config WorkerConfig) *Worker {
	return &Worker{
		queue:        queue,
		sender:       sender,
		renderer:     renderer,
		pollInterval: config.PollInterval,
		batchSize:    config.BatchSize,
		retention:    config.Retention,
		staleAfter:   config.StaleAfter,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Email worker started",
		"poll_interval", w.pollInterval,
		"batch_size", w.batchSize,
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.processBatch(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Email worker shutting down")
			return
		case <-ticker.C:
			w.processBatch(ctx)
			w.cleanup(ctx)
		}
	}
}

// processBatch claims and processes a batch of pending emails.
func (w *Worker) processBatch(ctx context.Context) {
	now := time.Now().UTC()
	w.releaseStaleClaims(ctx, now)

	jobs, err := w.queue.ClaimPendingJobs(ctx, w.batchSize, now)
	if err != nil {
		slog.Error("Failed to claim pending email jobs", "error", err)
		return
	}

	if len(jobs) == 0 {
		return
	}

	slog.Debug("Processing email batch", "count", len(jobs))

	for _, job := range jobs {
		if ctx.Err() != nil {
			// Claimed but unsent jobs go back to the queue.
			job.Status = entity.EmailStatusPending
			if err := w.queue.Update(context.WithoutCancel(ctx), job); err != nil {
				slog.Error("Failed to release email job", "job_id", job.ID, "error", err)
			}
			continue
		}
		w.processJob(ctx, job)
	}
}

// processJob sends a single claimed email job.
func (w *Worker) processJob(ctx context.Context, job *entity.EmailJob) {
	logger := slog.With(
		"job_id", job.ID,
		"template", job.TemplateType,
		"recipient", job.RecipientEmail,
	)

	html, text, err := w.renderTemplate(job)
	if err != nil {
		logger.Error("Failed to render email template", "error", err)
		w.handleFailure(ctx, job, err, true)
		return
	}

	result, err := w.sender.Send(ctx, adapter.SendEmailInput{
		To:      job.RecipientEmail,
		Name:    job.RecipientName,
		Subject: job.Subject,
		HTML:    html,
		Text:    text,
		Tag:     string(job.TemplateType),
	})
	if err != nil {
		logger.Error("Failed to send email", "error", err)

		w.handleFailure(ctx, job, err, errors.Is(err, domainerror.ErrPermanentEmailFailure))
		return
	}

	job.MarkSent(result.ProviderID)
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to mark job as sent", "error", err)
		return
	}

	logger.Info("Email sent", "provider_id", result.ProviderID)
}

// renderTemplate maps the job's stored data onto the template's view model.
func (w *Worker) renderTemplate(job *entity.EmailJob) (html string, text string, err error) {
	var data interface{}
	switch job.TemplateType {
	case entity.TemplateGoalCompleted:
		data = templates.GoalCompletedData{
			GoalName:     getString(job.TemplateData, "goal_name"),
			TargetAmount: getString(job.TemplateData, "target_amount"),
			GoalURL:      getString(job.TemplateData, "goal_url"),
		}
	case entity.TemplateMilestoneReached:
		data = templates.MilestoneReachedData{
			GoalName:       getString(job.TemplateData, "goal_name"),
			CurrentAmount:  getString(job.TemplateData, "current_amount"),
			TargetAmount:   getString(job.TemplateData, "target_amount"),
			MilestoneNames: getStrings(job.TemplateData, "milestone_names"),
			GoalURL:        getString(job.TemplateData, "goal_url"),
		}
	default:
		return "", "", domainerror.NewEmailError(
			domainerror.ErrCodeInvalidTemplate,
			"unknown template type",
			domainerror.ErrInvalidTemplate,
		)
	}

	html, text, err = w.renderer.Render(string(job.TemplateType), data)
	if err != nil {
		return "", "", domainerror.NewEmailError(
			domainerror.ErrCodeTemplateRenderFailed,
			"failed to render email template",
			fmt.Errorf("%w: %w", domainerror.ErrTemplateRenderFailed, err),
		)
	}
	return html, text, nil
}

// handleFailure records a failed attempt and reschedules or gives up.
func (w *Worker) handleFailure(ctx context.Context, job *entity.EmailJob, err error, permanent bool) {
	job.MarkFailed(err, permanent)

	if updateErr := w.queue.Update(ctx, job); updateErr != nil {
		slog.Error("Failed to update job after failure",
			"job_id", job.ID,
			"error", updateErr,
		)
	}

	if job.Status == entity.EmailStatusFailed {
		slog.Warn("Email job permanently failed",
			"job_id", job.ID,
			"attempts", job.Attempts,
			"last_error", job.LastError,
		)
		return
	}
	slog.Info("Email job scheduled for retry",
		"job_id", job.ID,
		"attempts", job.Attempts,
		"scheduled_at", job.ScheduledAt,
	)
}

// cleanup purges old sent jobs at most once a day.
// releaseStaleClaims puts jobs claimed by a worker that never finished back in the queue.
func (w *Worker) releaseStaleClaims(ctx context.Context, now time.Time) {
	if w.staleAfter <= 0 {
		return
	}
	released, err := w.queue.ReleaseStaleClaims(ctx, now.Add(-w.staleAfter))
	if err != nil {
		slog.Error("Failed to release stale email claims", "error", err)
		return
	}
	if released > 0 {
		slog.Warn("Released stale email claims", "count", released)
	}
}

func (w *Worker) cleanup(ctx context.Context) {
	if w.retention <= 0 || time.Since(w.lastCleanup) < 24*time.Hour {
		return
	}
	w.lastCleanup = time.Now()

	deleted, err := w.queue.DeleteSentBefore(ctx, time.Now().UTC().Add(-w.retention))
	if err != nil {
		slog.Error("Failed to purge sent email jobs", "error", err)
		return
	}
	if deleted > 0 {
		slog.Info("Purged sent email jobs", "count", deleted)
	}
}

func getString(data map[string]interface{}, key string) string {
	if v, ok := data[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// getStrings reads a string list that went through a JSON round trip.
func getStrings(data map[string]interface{}, key string) []string {
	switch v := data[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// ProcessNow processes all pending emails immediately (useful for testing).
func (w *Worker) ProcessNow(ctx context.Context) {
	w.processBatch(ctx)
}
