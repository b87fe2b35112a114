// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/integration/email/templates"
)

// Service handles email queueing operations.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		appBaseURL: strings.TrimRight(appBaseURL, "/"),
	}
}

// QueueGoalCompletedEmail queues a notification that a goal reached its target.
func (s *Service) QueueGoalCompletedEmail(ctx context.Context, input adapter.QueueGoalCompletedInput) error {
	subject := fmt.Sprintf("You reached your goal: %s", input.GoalName)

	templateData := map[string]interface{}{
		"goal_name":     input.GoalName,
		"target_amount": templates.FormatAmount(input.TargetAmount),
		"goal_url":      s.goalURL(input.GoalID),
	}

	job := entity.NewEmailJob(
		entity.TemplateGoalCompleted,
		input.UserEmail,
		"",
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue goal completed email",
			err,
		)
	}

	return nil
}

// QueueMilestoneReachedEmail queues a notification listing newly completed milestones.
func (s *Service) QueueMilestoneReachedEmail(ctx context.Context, input adapter.QueueMilestoneReachedInput) error {
	subject := fmt.Sprintf("Milestone reached on %s", input.GoalName)
	if len(input.MilestoneNames) > 1 {
		subject = fmt.Sprintf("%d milestones reached on %s", len(input.MilestoneNames), input.GoalName)
	}

	names := make([]interface{}, len(input.MilestoneNames))
	for i, name := range input.MilestoneNames {
		names[i] = name
	}

	templateData := map[string]interface{}{
		"goal_name":       input.GoalName,
		"current_amount":  templates.FormatAmount(input.CurrentAmount),
		"target_amount":   templates.FormatAmount(input.TargetAmount),
		"milestone_names": names,
		"goal_url":        s.goalURL(input.GoalID),
	}

	job := entity.NewEmailJob(
		entity.TemplateMilestoneReached,
		input.UserEmail,
		"",
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue milestone reached email",
			err,
		)
	}

	return nil
}

func (s *Service) goalURL(goalID string) string {
	return s.appBaseURL + "/goals/" + goalID
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
