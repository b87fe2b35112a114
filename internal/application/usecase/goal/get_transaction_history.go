// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// GetTransactionHistoryInput represents the input for a goal's transfer history.
type GetTransactionHistoryInput struct {
	UserID    uuid.UUID
	GoalID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// HistoryEntry is one transfer with the goal balance right after it.
type HistoryEntry struct {
	ID                uuid.UUID
	Date              time.Time
	TransactionAmount int64
	CumulativeAmount  int64
	Description       string
	// Wallet is nil when the wallet has since been deleted.
	Wallet *entity.Wallet
}

// GetTransactionHistoryOutput represents a goal's transfer history.
type GetTransactionHistoryOutput struct {
	OpeningAmount int64
	Entries       []HistoryEntry
}

// GetTransactionHistoryUseCase reconstructs a goal's balance over time from its ledger.
type GetTransactionHistoryUseCase struct {
	goalRepo            adapter.GoalRepository
	goalTransactionRepo adapter.GoalTransactionRepository
}

// NewGetTransactionHistoryUseCase creates a new GetTransactionHistoryUseCase instance.
func NewGetTransactionHistoryUseCase(goalRepo adapter.GoalRepository, goalTransactionRepo adapter.GoalTransactionRepository) *GetTransactionHistoryUseCase {
	return &GetTransactionHistoryUseCase{
		goalRepo:            goalRepo,
		goalTransactionRepo: goalTransactionRepo,
	}
}

// Execute returns the entries in ascending order with a running balance.
// With a start date the running balance opens at the sum of earlier entries.
func (uc *GetTransactionHistoryUseCase) Execute(ctx context.Context, input GetTransactionHistoryInput) (*GetTransactionHistoryOutput, error) {
	if input.StartDate != nil && input.EndDate != nil && input.StartDate.After(*input.EndDate) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidDateRange,
			"start date must not be after end date",
			domainerror.ErrInvalidDateRange,
		)
	}

	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	var opening int64
	if input.StartDate != nil {
		opening, err = uc.goalTransactionRepo.SumBefore(ctx, goal.ID, *input.StartDate)
		if err != nil {
			return nil, fmt.Errorf("failed to sum earlier goal transactions: %w", err)
		}
	}

	rows, err := uc.goalTransactionRepo.FindByGoalID(ctx, goal.ID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to find goal transactions: %w", err)
	}

	entries := make([]HistoryEntry, 0, len(rows))
	running := opening
	for _, row := range rows {
		running += row.GoalTransaction.Amount
		entries = append(entries, HistoryEntry{
			ID:                row.GoalTransaction.ID,
			Date:              row.GoalTransaction.CreatedAt,
			TransactionAmount: row.GoalTransaction.Amount,
			CumulativeAmount:  running,
			Description:       row.GoalTransaction.Description,
			Wallet:            row.Wallet,
		})
	}

	return &GetTransactionHistoryOutput{
		OpeningAmount: opening,
		Entries:       entries,
	}, nil
}
