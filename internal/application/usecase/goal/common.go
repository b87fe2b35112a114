// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// MaxNameLength is the maximum allowed length for goal and milestone names.
const MaxNameLength = 100

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxNameLength {
		return "", domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalName,
			fmt.Sprintf("name must be between 1 and %d characters", MaxNameLength),
			domainerror.ErrInvalidGoalName,
		)
	}
	return name, nil
}

func validateTargetAmount(amount int64) error {
	if amount <= 0 {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidTargetAmount,
			"target amount must be greater than zero",
			domainerror.ErrInvalidTargetAmount,
		)
	}
	return nil
}

func validateTransferAmount(amount int64) error {
	if amount <= 0 {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidTransferAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransferAmount,
		)
	}
	return nil
}

func goalNotFound() error {
	return domainerror.NewGoalError(
		domainerror.ErrCodeGoalNotFound,
		"goal not found",
		domainerror.ErrGoalNotFound,
	)
}

func walletNotFound() error {
	return domainerror.NewGoalError(
		domainerror.ErrCodeGoalWalletNotFound,
		"wallet not found",
		domainerror.ErrWalletNotFound,
	)
}

// findOwnedGoal loads a goal and hides goals owned by someone else.
func findOwnedGoal(ctx context.Context, repo adapter.GoalRepository, goalID, userID uuid.UUID) (*entity.Goal, error) {
	goal, err := repo.FindByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			return nil, goalNotFound()
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}
	if !goal.BelongsTo(userID) {
		return nil, goalNotFound()
	}
	return goal, nil
}

// findOwnedWallet loads a wallet for a goal transfer.
func findOwnedWallet(ctx context.Context, repo adapter.WalletRepository, walletID, userID uuid.UUID) (*entity.Wallet, error) {
	wallet, err := repo.FindByID(ctx, walletID)
	if err != nil {
		if errors.Is(err, domainerror.ErrWalletNotFound) {
			return nil, walletNotFound()
		}
		return nil, fmt.Errorf("failed to find wallet: %w", err)
	}
	if !wallet.BelongsTo(userID) {
		return nil, walletNotFound()
	}
	return wallet, nil
}

// transferError translates a storage-level transfer failure into a goal error.
// The InsufficientFundsError stays in the chain so callers can read the available amount.
func transferError(err error, insufficientCode domainerror.GoalErrorCode, insufficientMessage string) error {
	var insufficient *domainerror.InsufficientFundsError
	switch {
	case errors.As(err, &insufficient):
		return domainerror.NewGoalError(insufficientCode, insufficientMessage, insufficient)
	case errors.Is(err, domainerror.ErrWalletNotFound):
		return walletNotFound()
	case errors.Is(err, domainerror.ErrGoalNotFound):
		return goalNotFound()
	}
	return fmt.Errorf("failed to transfer funds: %w", err)
}

// persistMilestones writes every changed milestone.
func persistMilestones(ctx context.Context, repo adapter.MilestoneRepository, milestones []*entity.Milestone) error {
	for _, m := range milestones {
		if err := repo.Update(ctx, m); err != nil {
			return fmt.Errorf("failed to update milestone: %w", err)
		}
	}
	return nil
}
