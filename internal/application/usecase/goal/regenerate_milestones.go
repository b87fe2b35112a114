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

// RegenerateMilestonesInput represents the input for replacing a goal's milestones.
type RegenerateMilestonesInput struct {
	UserID               uuid.UUID
	GoalID               uuid.UUID
	MilestonePace        valueobject.MilestonePace
	CustomMilestoneCount *int
}

// RegenerateMilestonesOutput represents the goal with its new milestones.
type RegenerateMilestonesOutput struct {
	Goal *entity.GoalWithMilestones
}

// RegenerateMilestonesUseCase replaces a goal's milestones with a fresh set.
type RegenerateMilestonesUseCase struct {
	goalRepo adapter.GoalRepository
	uow      adapter.UnitOfWork
	planner  milestonePlanner
}

// NewRegenerateMilestonesUseCase creates a new RegenerateMilestonesUseCase instance.
func NewRegenerateMilestonesUseCase(goalRepo adapter.GoalRepository, uow adapter.UnitOfWork, suggester adapter.MilestoneSuggester) *RegenerateMilestonesUseCase {
	return &RegenerateMilestonesUseCase{
		goalRepo: goalRepo,
		uow:      uow,
		planner:  milestonePlanner{suggester: suggester},
	}
}

// Execute deletes the old milestones and inserts the new ones. Milestones the goal
// already covers are completed as of now.
func (uc *RegenerateMilestonesUseCase) Execute(ctx context.Context, input RegenerateMilestonesInput) (*RegenerateMilestonesOutput, error) {
	count, err := resolvePace(input.MilestonePace, input.CustomMilestoneCount)
	if err != nil {
		return nil, err
	}

	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	milestones, err := uc.planner.plan(ctx, goal, count)
	if err != nil {
		return nil, err
	}

	err = uc.uow.Do(ctx, func(repos adapter.Repositories) error {
		// Completion was planned against the amount read above; re-read it inside the transaction.
		current, err := findOwnedGoal(ctx, repos.Goals, goal.ID, input.UserID)
		if err != nil {
			return err
		}
		if current.CurrentAmount != goal.CurrentAmount {
			now := time.Now().UTC()
			entity.ReopenUnreachedMilestones(milestones, current.CurrentAmount, now)
			entity.CompleteReachedMilestones(milestones, current.CurrentAmount, now)
		}
		goal = current

		if err := repos.Milestones.DeleteByGoalID(ctx, goal.ID); err != nil {
			return fmt.Errorf("failed to delete milestones: %w", err)
		}
		if err := repos.Milestones.CreateBatch(ctx, milestones); err != nil {
			return fmt.Errorf("failed to create milestones: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &RegenerateMilestonesOutput{
		Goal: &entity.GoalWithMilestones{Goal: goal, Milestones: milestones},
	}, nil
}
