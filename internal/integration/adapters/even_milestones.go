package adapters

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/application/adapter"
)

// EvenMilestoneSuggester spaces milestones evenly up to the maximum percentage.
// It is deterministic and used when no AI provider is configured.
type EvenMilestoneSuggester struct{}

// NewEvenMilestoneSuggester creates a new EvenMilestoneSuggester.
func NewEvenMilestoneSuggester() *EvenMilestoneSuggester {
	return &EvenMilestoneSuggester{}
}

// SuggestMilestones returns request.Count milestones at 95*i/n percent.
func (s *EvenMilestoneSuggester) SuggestMilestones(_ context.Context, request adapter.MilestoneSuggestionRequest) ([]adapter.MilestoneSuggestion, error) {
	if request.Count <= 0 {
		return nil, fmt.Errorf("milestone count must be positive, got %d", request.Count)
	}

	top := decimal.NewFromInt(95)
	n := decimal.NewFromInt(int64(request.Count))

	suggestions := make([]adapter.MilestoneSuggestion, 0, request.Count)
	for i := 1; i <= request.Count; i++ {
		pct := top.Mul(decimal.NewFromInt(int64(i))).Div(n).Round(1)
		if pct.LessThan(decimal.NewFromInt(10)) {
			pct = decimal.NewFromInt(10)
		}
		value, _ := pct.Float64()
		suggestions = append(suggestions, adapter.MilestoneSuggestion{
			Name:             fmt.Sprintf("%s %d/%d", request.GoalName, i, request.Count),
			Advice:           fmt.Sprintf("Reach %s%% of your target.", pct.String()),
			TargetPercentage: value,
		})
	}
	return suggestions, nil
}
