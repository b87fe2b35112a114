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

// UpdateGoalInput represents the input for goal update.
// The saved amount is not editable here; it only moves through fund transfers.
type UpdateGoalInput struct {
	GoalID          uuid.UUID
	UserID          uuid.UUID
	Name            *string            // Optional
	TargetAmount    *int64             // Optional
	TargetDate      *time.Time         // Optional
	ClearTargetDate bool               // Removes the target date
	Status          *entity.GoalStatus // Optional
}

// UpdateGoalOutput represents the output of goal update.
type UpdateGoalOutput struct {
	Goal *entity.Goal
}

// UpdateGoalUseCase handles goal update logic.
type UpdateGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewUpdateGoalUseCase creates a new UpdateGoalUseCase instance.
func NewUpdateGoalUseCase(goalRepo adapter.GoalRepository) *UpdateGoalUseCase {
	return &UpdateGoalUseCase{
		goalRepo: goalRepo,
	}
}

// Execute performs the goal update.
func (uc *UpdateGoalUseCase) Execute(ctx context.Context, input UpdateGoalInput) (*UpdateGoalOutput, error) {
	if input.Name == nil && input.TargetAmount == nil && input.TargetDate == nil &&
		!input.ClearTargetDate && input.Status == nil {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeMissingGoalFields,
			"at least one field must be provided",
			nil,
		)
	}

	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	// Update name if provided
	if input.Name != nil {
		name, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		goal.Name = name
	}

	// Update target amount if provided
	if input.TargetAmount != nil {
		if err := validateTargetAmount(*input.TargetAmount); err != nil {
			return nil, err
		}
		goal.TargetAmount = *input.TargetAmount
	}

	if input.ClearTargetDate {
		goal.TargetDate = nil
	} else if input.TargetDate != nil {
		d := input.TargetDate.UTC()
		goal.TargetDate = &d
	}

	// Update status if provided
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeInvalidGoalStatus,
				"status must be 'active', 'completed' or 'cancelled'",
				domainerror.ErrInvalidGoalStatus,
			)
		}
		goal.Status = *input.Status
	}

	goal.UpdatedAt = time.Now().UTC()

	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return &UpdateGoalOutput{Goal: goal}, nil
}
