// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
)

// GetGoalInput represents the input for fetching a goal.
type GetGoalInput struct {
	UserID uuid.UUID
	GoalID uuid.UUID
}

// GetGoalOutput represents the output of fetching a goal.
type GetGoalOutput struct {
	Goal *entity.GoalWithMilestones
}

// GetGoalUseCase handles fetching a goal with its milestones.
type GetGoalUseCase struct {
	goalRepo      adapter.GoalRepository
	milestoneRepo adapter.MilestoneRepository
}

// NewGetGoalUseCase creates a new GetGoalUseCase instance.
func NewGetGoalUseCase(goalRepo adapter.GoalRepository, milestoneRepo adapter.MilestoneRepository) *GetGoalUseCase {
	return &GetGoalUseCase{
		goalRepo:      goalRepo,
		milestoneRepo: milestoneRepo,
	}
}

// Execute fetches the goal if it belongs to the user.
func (uc *GetGoalUseCase) Execute(ctx context.Context, input GetGoalInput) (*GetGoalOutput, error) {
	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	milestones, err := uc.milestoneRepo.FindByGoalID(ctx, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to find milestones: %w", err)
	}

	return &GetGoalOutput{
		Goal: &entity.GoalWithMilestones{Goal: goal, Milestones: milestones},
	}, nil
}
