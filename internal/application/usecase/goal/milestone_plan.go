// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/domain/valueobject"
)

const (
	minTargetPercentage = 10
	maxTargetPercentage = 95
)

// milestonePlanner turns suggester output into milestones for a goal.
type milestonePlanner struct {
	suggester adapter.MilestoneSuggester
}

// plan requests count suggestions and builds the milestone batch for goal.
// Completion is evaluated against the goal's current amount.
func (p milestonePlanner) plan(ctx context.Context, goal *entity.Goal, count int) ([]*entity.Milestone, error) {
	suggestions, err := p.suggester.SuggestMilestones(ctx, adapter.MilestoneSuggestionRequest{
		GoalName:      goal.Name,
		TargetAmount:  goal.TargetAmount,
		CurrentAmount: goal.CurrentAmount,
		TargetDate:    goal.TargetDate,
		Count:         count,
	})
	if err != nil {
		return nil, generationError("milestone suggestion service failed", err)
	}

	suggestions, err = normalizeSuggestions(suggestions, count)
	if err != nil {
		return nil, err
	}

	dates := spreadDates(goal.CreatedAt, goal.TargetDate, len(suggestions))
	target := decimal.NewFromInt(goal.TargetAmount)
	hundred := decimal.NewFromInt(100)

	milestones := make([]*entity.Milestone, 0, len(suggestions))
	for i, s := range suggestions {
		amount := target.Mul(decimal.NewFromFloat(s.TargetPercentage)).Div(hundred).Round(0).IntPart()
		if amount < 1 {
			amount = 1
		}
		milestones = append(milestones, entity.NewMilestone(
			goal.ID,
			s.Name,
			s.Advice,
			amount,
			dates[i],
			i+1,
			goal.CurrentAmount,
		))
	}
	return milestones, nil
}

// normalizeSuggestions checks the count, clamps percentages and sorts ascending.
func normalizeSuggestions(suggestions []adapter.MilestoneSuggestion, count int) ([]adapter.MilestoneSuggestion, error) {
	if len(suggestions) != count {
		return nil, generationError("milestone suggestion service returned an unexpected number of milestones", nil)
	}

	out := make([]adapter.MilestoneSuggestion, 0, len(suggestions))
	for _, s := range suggestions {
		s.Name = strings.TrimSpace(s.Name)
		if s.Name == "" {
			return nil, generationError("milestone suggestion service returned a milestone without a name", nil)
		}
		s.Name = truncateName(s.Name, MaxNameLength)
		if s.TargetPercentage < minTargetPercentage {
			s.TargetPercentage = minTargetPercentage
		}
		if s.TargetPercentage > maxTargetPercentage {
			s.TargetPercentage = maxTargetPercentage
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TargetPercentage < out[j].TargetPercentage
	})
	return out, nil
}

// truncateName cuts name to at most limit bytes on a rune boundary.
func truncateName(name string, limit int) string {
	if len(name) <= limit {
		return name
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	return name[:cut]
}

// spreadDates places n dates evenly between start and end, the last one on end.
// Without an end date every milestone is undated.
func spreadDates(start time.Time, end *time.Time, n int) []*time.Time {
	dates := make([]*time.Time, n)
	if end == nil || n == 0 {
		return dates
	}

	from := valueobject.TruncateToDay(start)
	to := valueobject.TruncateToDay(*end)
	if !to.After(from) {
		for i := range dates {
			d := to
			dates[i] = &d
		}
		return dates
	}

	days := int(to.Sub(from).Hours() / 24)
	for i := range dates {
		d := from.AddDate(0, 0, days*(i+1)/n)
		dates[i] = &d
	}
	return dates
}

func generationError(message string, err error) error {
	if err == nil {
		err = domainerror.ErrMilestoneGeneration
	}
	return domainerror.NewGoalError(domainerror.ErrCodeMilestoneGeneration, message, err)
}

// resolvePace validates the pace and returns the milestone count.
// An empty pace means moderate.
func resolvePace(pace valueobject.MilestonePace, custom *int) (int, error) {
	if pace == "" {
		pace = valueobject.MilestonePaceModerate
	}
	if !pace.IsValid() {
		return 0, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidMilestonePace,
			"milestone pace must be 'aggressive', 'moderate' or 'relaxed'",
			domainerror.ErrInvalidMilestonePace,
		)
	}
	return pace.MilestoneCount(custom), nil
}
