// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Milestone is an intermediate savings checkpoint within a goal.
type Milestone struct {
	ID           uuid.UUID
	GoalID       uuid.UUID
	Name         string
	TargetAmount int64
	TargetDate   *time.Time
	Order        int
	IsCompleted  bool
	CompletedAt  *time.Time
	Advice       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewMilestone creates a new Milestone whose completion is evaluated against currentAmount.
func NewMilestone(goalID uuid.UUID, name, advice string, targetAmount int64, targetDate *time.Time, order int, currentAmount int64) *Milestone {
	now := time.Now().UTC()

	m := &Milestone{
		ID:           uuid.New(),
		GoalID:       goalID,
		Name:         name,
		Advice:       advice,
		TargetAmount: targetAmount,
		TargetDate:   targetDate,
		Order:        order,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if currentAmount >= targetAmount {
		m.markCompleted(now)
	}
	return m
}

func (m *Milestone) markCompleted(at time.Time) {
	m.IsCompleted = true
	m.CompletedAt = &at
	m.UpdatedAt = at
}

func (m *Milestone) markIncomplete(at time.Time) {
	m.IsCompleted = false
	m.CompletedAt = nil
	m.UpdatedAt = at
}

// CompleteReachedMilestones marks every incomplete milestone whose target is covered
// by currentAmount and returns the ones that changed.
func CompleteReachedMilestones(milestones []*Milestone, currentAmount int64, now time.Time) []*Milestone {
	var changed []*Milestone
	for _, m := range milestones {
		if !m.IsCompleted && m.TargetAmount <= currentAmount {
			m.markCompleted(now)
			changed = append(changed, m)
		}
	}
	return changed
}

// ReopenUnreachedMilestones clears completion on milestones whose target is no longer
// covered by currentAmount and returns the ones that changed.
func ReopenUnreachedMilestones(milestones []*Milestone, currentAmount int64, now time.Time) []*Milestone {
	var changed []*Milestone
	for _, m := range milestones {
		if m.IsCompleted && m.TargetAmount > currentAmount {
			m.markIncomplete(now)
			changed = append(changed, m)
		}
	}
	return changed
}
