// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
)

// ListGoalsInput represents the input for listing goals.
type ListGoalsInput struct {
	UserID uuid.UUID
}

// ListGoalsOutput represents the output of listing goals.
type ListGoalsOutput struct {
	Goals []*entity.GoalWithMilestones
}

// ListGoalsUseCase handles listing a user's goals.
type ListGoalsUseCase struct {
	goalRepo      adapter.GoalRepository
	milestoneRepo adapter.MilestoneRepository
}

// NewListGoalsUseCase creates a new ListGoalsUseCase instance.
func NewListGoalsUseCase(goalRepo adapter.GoalRepository, milestoneRepo adapter.MilestoneRepository) *ListGoalsUseCase {
	return &ListGoalsUseCase{
		goalRepo:      goalRepo,
		milestoneRepo: milestoneRepo,
	}
}

// Execute lists the user's goals with their milestones.
func (uc *ListGoalsUseCase) Execute(ctx context.Context, input ListGoalsInput) (*ListGoalsOutput, error) {
	goals, err := uc.goalRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(goals))
	for _, g := range goals {
		ids = append(ids, g.ID)
	}

	byGoal, err := uc.milestoneRepo.FindByGoalIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}

	out := make([]*entity.GoalWithMilestones, 0, len(goals))
	for _, g := range goals {
		out = append(out, &entity.GoalWithMilestones{Goal: g, Milestones: byGoal[g.ID]})
	}

	return &ListGoalsOutput{Goals: out}, nil
}
