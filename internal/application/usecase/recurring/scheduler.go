// Package recurring materializes due recurring transaction templates.
package recurring

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	"github.com/pocketledger/backend/internal/domain/valueobject"
)

// Scheduler finds the recurring templates that are due on a given day.
type Scheduler struct {
	transactionRepo adapter.TransactionRepository
}

// NewScheduler creates a new Scheduler instance.
func NewScheduler(transactionRepo adapter.TransactionRepository) *Scheduler {
	return &Scheduler{
		transactionRepo: transactionRepo,
	}
}

// FindDue returns one unit of work per template due on today.
// A nil userID scans every user. Templates with an unknown frequency are skipped.
func (s *Scheduler) FindDue(ctx context.Context, today time.Time, userID *uuid.UUID) ([]entity.RecurringUnit, error) {
	templates, err := s.transactionRepo.FindRecurringTemplates(ctx, today, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find recurring templates: %w", err)
	}

	units := make([]entity.RecurringUnit, 0)
	for _, t := range templates {
		if t.Frequency == nil || !t.Frequency.IsValid() {
			slog.Warn("Skipping recurring template with invalid frequency",
				"template_id", t.ID,
				"frequency", t.Frequency,
			)
			continue
		}

		dueDate, due := t.Frequency.IsDue(t.Date, t.LastProcessedAt, today)
		if !due {
			continue
		}

		units = append(units, unitFromTemplate(t, dueDate))
	}

	return units, nil
}

func unitFromTemplate(t *entity.Transaction, dueDate time.Time) entity.RecurringUnit {
	return entity.RecurringUnit{
		TemplateID:   t.ID,
		UserID:       t.UserID,
		Name:         t.Name,
		Type:         t.Type,
		Amount:       t.Amount,
		CategoryID:   t.CategoryID,
		WalletID:     t.WalletID,
		Frequency:    string(*t.Frequency),
		Description:  t.Description,
		OriginalDate: t.Date,
		DueDate:      valueobject.TruncateToDay(dueDate),
	}
}
