package recurring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/domain/valueobject"
)

// Outcome reports what the worker did with a unit of work.
type Outcome string

const (
	// OutcomeProcessed means an occurrence was created.
	OutcomeProcessed Outcome = "processed"
	// OutcomeSkipped means the unit had already been materialized.
	OutcomeSkipped Outcome = "skipped"
)

// Worker turns one due template into a dated occurrence.
type Worker struct {
	uow adapter.UnitOfWork
	now func() time.Time
}

// NewWorker creates a new Worker instance.
func NewWorker(uow adapter.UnitOfWork) *Worker {
	return &Worker{
		uow: uow,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Process creates the occurrence, applies it to the wallet and advances the
// template cursor in one database transaction. The (template, due date) pair is
// claimed first, so a redelivered unit is skipped without side effects.
func (w *Worker) Process(ctx context.Context, unit entity.RecurringUnit) (Outcome, error) {
	frequency := valueobject.Frequency(unit.Frequency)
	if !frequency.IsValid() {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidFrequency,
			fmt.Sprintf("template has invalid frequency %q", unit.Frequency),
			domainerror.ErrInvalidFrequency,
		)
	}

	now := w.now()
	outcome := OutcomeSkipped

	err := w.uow.Do(ctx, func(repos adapter.Repositories) error {
		template, err := repos.Transactions.FindByID(ctx, unit.TemplateID)
		if err != nil {
			if errors.Is(err, domainerror.ErrTransactionNotFound) {
				return templateNotFound(unit.TemplateID)
			}
			return fmt.Errorf("failed to load template: %w", err)
		}
		if !template.IsTemplate() {
			return templateNotFound(unit.TemplateID)
		}

		occurrence := entity.NewTransaction(
			unit.UserID,
			unit.Name,
			unit.Type,
			unit.Amount,
			now,
			unit.CategoryID,
			unit.WalletID,
			true,
			&frequency,
		)
		templateID := unit.TemplateID
		occurrence.TemplateID = &templateID
		occurrence.Description = strings.TrimSpace(unit.Description + entity.AutoGeneratedSuffix)

		claimed, err := repos.RecurringRuns.Claim(ctx, &entity.RecurringRun{
			ID:            uuid.New(),
			TemplateID:    unit.TemplateID,
			DueDate:       unit.DueDate,
			TransactionID: occurrence.ID,
			CreatedAt:     now,
		})
		if err != nil {
			return fmt.Errorf("failed to claim recurring run: %w", err)
		}
		if !claimed {
			return healCursor(ctx, repos.Transactions, template, unit.DueDate)
		}

		if err := repos.Transactions.Create(ctx, occurrence); err != nil {
			return fmt.Errorf("failed to create occurrence: %w", err)
		}
		if err := repos.Wallets.AdjustBalance(ctx, unit.WalletID, unit.UserID, occurrence.Effect()); err != nil {
			return fmt.Errorf("failed to apply occurrence to wallet: %w", err)
		}
		if err := repos.Transactions.MarkProcessed(ctx, unit.TemplateID, now); err != nil {
			return fmt.Errorf("failed to advance template cursor: %w", err)
		}

		outcome = OutcomeProcessed
		return nil
	})
	if err != nil {
		return "", err
	}

	return outcome, nil
}

// healCursor moves a template's cursor up to dueDate when the run for that date
// already exists but the cursor fell behind it, so the template is not stuck on
// the same due date forever.
func healCursor(ctx context.Context, repo adapter.TransactionRepository, template *entity.Transaction, dueDate time.Time) error {
	if template.LastProcessedAt != nil && !valueobject.TruncateToDay(*template.LastProcessedAt).Before(dueDate) {
		return nil
	}
	slog.Warn("Recurring cursor behind an existing run, advancing it",
		"template_id", template.ID,
		"due_date", dueDate.Format(time.DateOnly),
	)
	if err := repo.MarkProcessed(ctx, template.ID, dueDate); err != nil {
		return fmt.Errorf("failed to heal template cursor: %w", err)
	}
	return nil
}

func templateNotFound(id uuid.UUID) error {
	return domainerror.NewRecurringError(
		domainerror.ErrCodeTemplateNotFound,
		fmt.Sprintf("recurring template %s not found", id),
		domainerror.ErrTemplateNotFound,
	)
}
