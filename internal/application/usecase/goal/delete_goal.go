// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
)

// DeleteGoalInput represents the input for goal deletion.
type DeleteGoalInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
}

// DeleteGoalOutput represents the output of goal deletion.
type DeleteGoalOutput struct {
	// ReturnedAmounts maps each credited wallet to the amount it got back.
	ReturnedAmounts map[uuid.UUID]int64
}

// DeleteGoalUseCase deletes a goal and returns its allocated funds to the source wallets.
type DeleteGoalUseCase struct {
	uow adapter.UnitOfWork
}

// NewDeleteGoalUseCase creates a new DeleteGoalUseCase instance.
func NewDeleteGoalUseCase(uow adapter.UnitOfWork) *DeleteGoalUseCase {
	return &DeleteGoalUseCase{
		uow: uow,
	}
}

// Execute performs the goal deletion. Only wallets with a positive net allocation are credited.
func (uc *DeleteGoalUseCase) Execute(ctx context.Context, input DeleteGoalInput) (*DeleteGoalOutput, error) {
	returned := make(map[uuid.UUID]int64)

	err := uc.uow.Do(ctx, func(repos adapter.Repositories) error {
		goal, err := findOwnedGoal(ctx, repos.Goals, input.GoalID, input.UserID)
		if err != nil {
			return err
		}

		allocations, err := repos.GoalTransactions.SumByWallet(ctx, goal.ID)
		if err != nil {
			return fmt.Errorf("failed to sum goal allocations: %w", err)
		}

		for _, a := range allocations {
			if a.Amount <= 0 {
				continue
			}
			if err := repos.Wallets.AdjustBalance(ctx, a.WalletID, input.UserID, a.Amount); err != nil {
				return fmt.Errorf("failed to return funds to wallet %s: %w", a.WalletID, err)
			}
			returned[a.WalletID] = a.Amount
		}

		if err := repos.Milestones.DeleteByGoalID(ctx, goal.ID); err != nil {
			return fmt.Errorf("failed to delete milestones: %w", err)
		}
		if err := repos.GoalTransactions.DeleteByGoalID(ctx, goal.ID); err != nil {
			return fmt.Errorf("failed to delete goal transactions: %w", err)
		}
		if err := repos.Goals.Delete(ctx, goal.ID); err != nil {
			return fmt.Errorf("failed to delete goal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &DeleteGoalOutput{ReturnedAmounts: returned}, nil
}
