package scenario

import (
	"errors"
	"testing"

	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

func TestCalculate(t *testing.T) {
	t.Run("no interest is plain accumulation", func(t *testing.T) {
		out, err := Calculate(Input{
			MonthlyIncome:   500000,
			MonthlyExpenses: 300000,
			StartingSavings: 100000,
			Horizons:        []int{12},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := out.Baseline[0]
		if got.ProjectedBalance != 100000+12*200000 {
			t.Errorf("balance = %d, want %d", got.ProjectedBalance, 100000+12*200000)
		}
		if got.TotalContributions != 12*200000 {
			t.Errorf("contributions = %d", got.TotalContributions)
		}
		if got.InterestEarned != 0 {
			t.Errorf("interest = %d, want 0", got.InterestEarned)
		}
	})

	t.Run("monthly compounding", func(t *testing.T) {
		// 12% a year is 1% a month: 10000 -> 10100 -> 10201.
		out, err := Calculate(Input{
			StartingSavings:    10000,
			AnnualInterestRate: 12,
			Horizons:           []int{2},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := out.Baseline[0].ProjectedBalance; got != 10201 {
			t.Errorf("balance = %d, want 10201", got)
		}
		if got := out.Baseline[0].InterestEarned; got != 201 {
			t.Errorf("interest = %d, want 201", got)
		}
	})

	t.Run("scenario applies the changes", func(t *testing.T) {
		out, err := Calculate(Input{
			MonthlyIncome:    100000,
			MonthlyExpenses:  80000,
			IncomeChangePct:  10,
			ExpenseChangePct: -25,
			Horizons:         []int{1},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.BaselineMonthlyNet != 20000 {
			t.Errorf("baseline net = %d, want 20000", out.BaselineMonthlyNet)
		}
		if out.ScenarioMonthlyNet != 50000 {
			t.Errorf("scenario net = %d, want 50000", out.ScenarioMonthlyNet)
		}
	})

	t.Run("default horizons", func(t *testing.T) {
		out, err := Calculate(Input{MonthlyIncome: 1000})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Scenario) != len(DefaultHorizons) {
			t.Fatalf("got %d projections, want %d", len(out.Scenario), len(DefaultHorizons))
		}
		for i, p := range out.Scenario {
			if p.Months != DefaultHorizons[i] {
				t.Errorf("projection %d months = %d, want %d", i, p.Months, DefaultHorizons[i])
			}
		}
	})

	t.Run("horizons are sorted and deduplicated", func(t *testing.T) {
		out, err := Calculate(Input{MonthlyIncome: 1000, Horizons: []int{24, 6, 24}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Baseline) != 2 || out.Baseline[0].Months != 6 || out.Baseline[1].Months != 24 {
			t.Errorf("unexpected projections: %+v", out.Baseline)
		}
	})
}

func TestCalculateValidation(t *testing.T) {
	tests := []struct {
		name  string
		input Input
		want  error
	}{
		{name: "negative income", input: Input{MonthlyIncome: -1}, want: domainerror.ErrInvalidScenarioAmount},
		{name: "negative savings", input: Input{StartingSavings: -1}, want: domainerror.ErrInvalidScenarioAmount},
		{name: "rate above 100", input: Input{AnnualInterestRate: 101}, want: domainerror.ErrInvalidScenarioRate},
		{name: "income cut beyond 100", input: Input{IncomeChangePct: -150}, want: domainerror.ErrInvalidScenarioRate},
		{name: "zero horizon", input: Input{Horizons: []int{0}}, want: domainerror.ErrInvalidHorizon},
		{name: "horizon too far", input: Input{Horizons: []int{601}}, want: domainerror.ErrInvalidHorizon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
			if domainerror.KindOf(err) != domainerror.KindValidation {
				t.Errorf("kind = %s, want validation", domainerror.KindOf(err))
			}
		})
	}
}
