// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// MilestoneSuggestionRequest describes the goal milestones are requested for.
type MilestoneSuggestionRequest struct {
	GoalName      string
	TargetAmount  int64
	CurrentAmount int64
	TargetDate    *time.Time
	Count         int
}

// MilestoneSuggestion is one suggested checkpoint.
type MilestoneSuggestion struct {
	Name             string
	Advice           string
	TargetPercentage float64
}

// MilestoneSuggester produces milestone suggestions for a goal.
type MilestoneSuggester interface {
	// SuggestMilestones returns suggestions for the goal. Callers validate the result.
	SuggestMilestones(ctx context.Context, request MilestoneSuggestionRequest) ([]MilestoneSuggestion, error)
}
