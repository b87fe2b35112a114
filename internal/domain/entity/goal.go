// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// GoalStatus represents the lifecycle state of a savings goal.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusCancelled GoalStatus = "cancelled"
)

// IsValid reports whether the status is one of the known values.
func (s GoalStatus) IsValid() bool {
	switch s {
	case GoalStatusActive, GoalStatusCompleted, GoalStatusCancelled:
		return true
	}
	return false
}

// Goal represents a savings goal funded from the user's wallets.
type Goal struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	TargetAmount  int64
	CurrentAmount int64
	TargetDate    *time.Time
	Status        GoalStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewGoal creates a new active Goal with nothing saved yet.
func NewGoal(userID uuid.UUID, name string, targetAmount int64, targetDate *time.Time) *Goal {
	now := time.Now().UTC()

	return &Goal{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         name,
		TargetAmount: targetAmount,
		TargetDate:   targetDate,
		Status:       GoalStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// BelongsTo reports whether the goal is owned by the given user.
func (g *Goal) BelongsTo(userID uuid.UUID) bool {
	return g != nil && g.UserID == userID
}

// IsReached reports whether the saved amount covers the target.
func (g *Goal) IsReached() bool {
	return g.CurrentAmount >= g.TargetAmount
}

// RecomputeStatus sets the status from the saved amount.
// A cancelled goal keeps its status.
func (g *Goal) RecomputeStatus() {
	if g.Status == GoalStatusCancelled {
		return
	}
	if g.IsReached() {
		g.Status = GoalStatusCompleted
		return
	}
	g.Status = GoalStatusActive
}

// GoalWithMilestones represents a goal with its ordered milestones.
type GoalWithMilestones struct {
	Goal       *Goal
	Milestones []*Milestone
}
