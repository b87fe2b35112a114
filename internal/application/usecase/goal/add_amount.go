// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// AddAmountInput represents a transfer from a wallet into a goal.
type AddAmountInput struct {
	UserID    uuid.UUID
	UserEmail string // Optional, enables notification emails
	GoalID    uuid.UUID
	WalletID  uuid.UUID
	Amount    int64
}

// AddAmountOutput represents the result of a transfer into a goal.
type AddAmountOutput struct {
	Goal                       *entity.GoalWithMilestones
	NewlyCompletedMilestoneIDs []uuid.UUID
	IsGoalCompleted            bool
}

// AddAmountUseCase moves funds from a wallet into a goal.
type AddAmountUseCase struct {
	uow          adapter.UnitOfWork
	emailService adapter.EmailService
}

// NewAddAmountUseCase creates a new AddAmountUseCase instance.
// emailService may be nil.
func NewAddAmountUseCase(uow adapter.UnitOfWork, emailService adapter.EmailService) *AddAmountUseCase {
	return &AddAmountUseCase{
		uow:          uow,
		emailService: emailService,
	}
}

// Execute debits the wallet, credits the goal, records the ledger entry and
// completes every milestone the new amount reaches, all in one transaction.
func (uc *AddAmountUseCase) Execute(ctx context.Context, input AddAmountInput) (*AddAmountOutput, error) {
	if err := validateTransferAmount(input.Amount); err != nil {
		return nil, err
	}

	var (
		goal          *entity.Goal
		milestones    []*entity.Milestone
		completed     []*entity.Milestone
		goalCompleted bool
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

		// Debit is conditional on the balance, so a short wallet changes nothing.
		if err := repos.Wallets.Debit(ctx, wallet.ID, input.UserID, input.Amount); err != nil {
			return transferError(err, domainerror.ErrCodeWalletInsufficientFunds, "insufficient funds in wallet")
		}
		if err := repos.Goals.AdjustCurrentAmount(ctx, goal.ID, input.UserID, input.Amount); err != nil {
			return transferError(err, domainerror.ErrCodeGoalInsufficientFunds, "insufficient funds in goal")
		}

		previousStatus := goal.Status
		if goal, err = repos.Goals.FindByID(ctx, goal.ID); err != nil {
			return fmt.Errorf("failed to reload goal: %w", err)
		}
		goal.RecomputeStatus()
		goal.UpdatedAt = time.Now().UTC()
		goalCompleted = previousStatus != entity.GoalStatusCompleted && goal.Status == entity.GoalStatusCompleted
		if err := repos.Goals.Update(ctx, goal); err != nil {
			return fmt.Errorf("failed to update goal: %w", err)
		}

		entry := entity.NewGoalTransaction(goal.ID, input.UserID, wallet.ID, input.Amount,
			fmt.Sprintf("Transfer from %s", wallet.Name))
		if err := repos.GoalTransactions.Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to record goal transaction: %w", err)
		}

		milestones, err = repos.Milestones.FindByGoalID(ctx, goal.ID)
		if err != nil {
			return fmt.Errorf("failed to find milestones: %w", err)
		}
		completed = entity.CompleteReachedMilestones(milestones, goal.CurrentAmount, time.Now().UTC())
		return persistMilestones(ctx, repos.Milestones, completed)
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(completed))
	for _, m := range completed {
		ids = append(ids, m.ID)
	}

	uc.notify(ctx, input.UserEmail, goal, completed, goalCompleted)

	return &AddAmountOutput{
		Goal:                       &entity.GoalWithMilestones{Goal: goal, Milestones: milestones},
		NewlyCompletedMilestoneIDs: ids,
		IsGoalCompleted:            goalCompleted,
	}, nil
}

// notify queues celebration emails. Failures never undo the transfer.
func (uc *AddAmountUseCase) notify(ctx context.Context, email string, goal *entity.Goal, completed []*entity.Milestone, goalCompleted bool) {
	if uc.emailService == nil || email == "" {
		return
	}

	if goalCompleted {
		err := uc.emailService.QueueGoalCompletedEmail(ctx, adapter.QueueGoalCompletedInput{
			UserEmail:    email,
			GoalID:       goal.ID.String(),
			GoalName:     goal.Name,
			TargetAmount: goal.TargetAmount,
		})
		if err != nil {
			slog.Warn("failed to queue goal completed email", "goal_id", goal.ID, "error", err)
		}
		return
	}

	if len(completed) == 0 {
		return
	}
	names := make([]string, 0, len(completed))
	for _, m := range completed {
		names = append(names, m.Name)
	}
	err := uc.emailService.QueueMilestoneReachedEmail(ctx, adapter.QueueMilestoneReachedInput{
		UserEmail:      email,
		GoalID:         goal.ID.String(),
		GoalName:       goal.Name,
		CurrentAmount:  goal.CurrentAmount,
		TargetAmount:   goal.TargetAmount,
		MilestoneNames: names,
	})
	if err != nil {
		slog.Warn("failed to queue milestone reached email", "goal_id", goal.ID, "error", err)
	}
}
