// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
	// Tag labels the message at the provider, e.g. the template name.
	Tag string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ProviderID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService defines the interface for queueing emails.
type EmailService interface {
	// QueueGoalCompletedEmail queues a notification that a goal reached its target.
	QueueGoalCompletedEmail(ctx context.Context, input QueueGoalCompletedInput) error

	// QueueMilestoneReachedEmail queues a notification listing newly completed milestones.
	QueueMilestoneReachedEmail(ctx context.Context, input QueueMilestoneReachedInput) error
}

// QueueGoalCompletedInput represents the input for queueing a goal completed email.
type QueueGoalCompletedInput struct {
	UserEmail    string
	GoalID       string
	GoalName     string
	TargetAmount int64
}

// QueueMilestoneReachedInput represents the input for queueing a milestone reached email.
type QueueMilestoneReachedInput struct {
	UserEmail      string
	GoalID         string
	GoalName       string
	CurrentAmount  int64
	TargetAmount   int64
	MilestoneNames []string
}
