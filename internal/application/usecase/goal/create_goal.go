// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	"github.com/pocketledger/backend/internal/domain/valueobject"
)

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	UserID               uuid.UUID
	Name                 string
	TargetAmount         int64
	TargetDate           *time.Time
	MilestonePace        valueobject.MilestonePace // Optional, defaults to moderate
	CustomMilestoneCount *int                      // Optional, overrides the pace
}

// CreateGoalOutput represents the output of goal creation.
type CreateGoalOutput struct {
	Goal *entity.GoalWithMilestones
}

// CreateGoalUseCase handles goal creation with its initial milestone set.
type CreateGoalUseCase struct {
	uow     adapter.UnitOfWork
	planner milestonePlanner
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(uow adapter.UnitOfWork, suggester adapter.MilestoneSuggester) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		uow:     uow,
		planner: milestonePlanner{suggester: suggester},
	}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := validateTargetAmount(input.TargetAmount); err != nil {
		return nil, err
	}
	count, err := resolvePace(input.MilestonePace, input.CustomMilestoneCount)
	if err != nil {
		return nil, err
	}

	var targetDate *time.Time
	if input.TargetDate != nil {
		d := input.TargetDate.UTC()
		targetDate = &d
	}
	goal := entity.NewGoal(input.UserID, name, input.TargetAmount, targetDate)

	// Suggestions come from an external service; ask before opening the database transaction.
	milestones, err := uc.planner.plan(ctx, goal, count)
	if err != nil {
		return nil, err
	}

	err = uc.uow.Do(ctx, func(repos adapter.Repositories) error {
		if err := repos.Goals.Create(ctx, goal); err != nil {
			return fmt.Errorf("failed to create goal: %w", err)
		}
		if err := repos.Milestones.CreateBatch(ctx, milestones); err != nil {
			return fmt.Errorf("failed to create milestones: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateGoalOutput{
		Goal: &entity.GoalWithMilestones{Goal: goal, Milestones: milestones},
	}, nil
}
