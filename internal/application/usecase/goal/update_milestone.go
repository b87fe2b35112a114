// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// MaxAdviceLength is the maximum allowed length for milestone advice.
const MaxAdviceLength = 500

// UpdateMilestoneInput represents a manual edit of a milestone.
// Target amount and completion follow the goal and are not editable.
type UpdateMilestoneInput struct {
	UserID          uuid.UUID
	GoalID          uuid.UUID
	MilestoneID     uuid.UUID
	Name            *string
	Advice          *string
	TargetDate      *time.Time
	ClearTargetDate bool
}

// UpdateMilestoneOutput represents the output of milestone update.
type UpdateMilestoneOutput struct {
	Milestone *entity.Milestone
}

// UpdateMilestoneUseCase handles manual milestone edits.
type UpdateMilestoneUseCase struct {
	goalRepo      adapter.GoalRepository
	milestoneRepo adapter.MilestoneRepository
}

// NewUpdateMilestoneUseCase creates a new UpdateMilestoneUseCase instance.
func NewUpdateMilestoneUseCase(goalRepo adapter.GoalRepository, milestoneRepo adapter.MilestoneRepository) *UpdateMilestoneUseCase {
	return &UpdateMilestoneUseCase{
		goalRepo:      goalRepo,
		milestoneRepo: milestoneRepo,
	}
}

// Execute performs the milestone update.
func (uc *UpdateMilestoneUseCase) Execute(ctx context.Context, input UpdateMilestoneInput) (*UpdateMilestoneOutput, error) {
	if input.Name == nil && input.Advice == nil && input.TargetDate == nil && !input.ClearTargetDate {
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

	milestone, err := uc.milestoneRepo.FindByID(ctx, input.MilestoneID)
	if err != nil && !errors.Is(err, domainerror.ErrMilestoneNotFound) {
		return nil, fmt.Errorf("failed to find milestone: %w", err)
	}
	if err != nil || milestone.GoalID != goal.ID {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeMilestoneNotFound,
			"milestone not found",
			domainerror.ErrMilestoneNotFound,
		)
	}

	if input.Name != nil {
		name, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		milestone.Name = name
	}
	if input.Advice != nil {
		advice := strings.TrimSpace(*input.Advice)
		if len(advice) > MaxAdviceLength {
			advice = advice[:MaxAdviceLength]
		}
		milestone.Advice = advice
	}
	if input.ClearTargetDate {
		milestone.TargetDate = nil
	} else if input.TargetDate != nil {
		d := input.TargetDate.UTC()
		milestone.TargetDate = &d
	}
	milestone.UpdatedAt = time.Now().UTC()

	if err := uc.milestoneRepo.Update(ctx, milestone); err != nil {
		return nil, fmt.Errorf("failed to update milestone: %w", err)
	}

	return &UpdateMilestoneOutput{Milestone: milestone}, nil
}
