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

// RemoveAmountInput represents a withdrawal from a goal back to a wallet.
type RemoveAmountInput struct {
	UserID   uuid.UUID
	GoalID   uuid.UUID
	WalletID uuid.UUID
	Amount   int64
}

// RemoveAmountOutput represents the result of a withdrawal from a goal.
type RemoveAmountOutput struct {
	Goal *entity.GoalWithMilestones
}

// RemoveAmountUseCase moves funds from a goal back to a wallet.
type RemoveAmountUseCase struct {
	uow adapter.UnitOfWork
}

// NewRemoveAmountUseCase creates a new RemoveAmountUseCase instance.
func NewRemoveAmountUseCase(uow adapter.UnitOfWork) *RemoveAmountUseCase {
	return &RemoveAmountUseCase{
		uow: uow,
	}
}

// Execute debits the goal, credits the wallet, records a negative ledger entry
// and reopens milestones the goal no longer covers.
func (uc *RemoveAmountUseCase) Execute(ctx context.Context, input RemoveAmountInput) (*RemoveAmountOutput, error) {
	if err := validateTransferAmount(input.Amount); err != nil {
		return nil, err
	}

	var (
		goal       *entity.Goal
		milestones []*entity.Milestone
	)

	err := uc.uow.Do(ctx, func(repos adapter.Repositories) error {
		var err error
		goal, err = findOwnedGoal(ctx, repos.Goals, input.GoalID, input.UserID)
		if err != nil {
			return err
		}
		wallet, err := findOwnedWallet(ctx, repos.Wallets, input.WalletID, input.UserID)
		if err != nil {
			return err
		}

		if err := repos.Goals.AdjustCurrentAmount(ctx, goal.ID, input.UserID, -input.Amount); err != nil {
			return transferError(err, domainerror.ErrCodeGoalInsufficientFunds, "insufficient funds in goal")
		}
		if err := repos.Wallets.AdjustBalance(ctx, wallet.ID, input.UserID, input.Amount); err != nil {
			return transferError(err, domainerror.ErrCodeWalletInsufficientFunds, "insufficient funds in wallet")
		}

		if goal, err = repos.Goals.FindByID(ctx, goal.ID); err != nil {
			return fmt.Errorf("failed to reload goal: %w", err)
		}
		goal.RecomputeStatus()
		goal.UpdatedAt = time.Now().UTC()
		if err := repos.Goals.Update(ctx, goal); err != nil {
			return fmt.Errorf("failed to update goal: %w", err)
		}

		entry := entity.NewGoalTransaction(goal.ID, input.UserID, wallet.ID, -input.Amount,
			fmt.Sprintf("Withdrawal to %s", wallet.Name))
		if err := repos.GoalTransactions.Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to record goal transaction: %w", err)
		}

		milestones, err = repos.Milestones.FindByGoalID(ctx, goal.ID)
		if err != nil {
			return fmt.Errorf("failed to find milestones: %w", err)
		}
		reopened := entity.ReopenUnreachedMilestones(milestones, goal.CurrentAmount, time.Now().UTC())
		return persistMilestones(ctx, repos.Milestones, reopened)
	})
	if err != nil {
		return nil, err
	}

	return &RemoveAmountOutput{
		Goal: &entity.GoalWithMilestones{Goal: goal, Milestones: milestones},
	}, nil
}
