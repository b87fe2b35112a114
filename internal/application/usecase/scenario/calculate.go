// Package scenario projects savings under what-if income and expense changes.
package scenario

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// MaxHorizonMonths caps how far a projection may reach.
const MaxHorizonMonths = 600

// DefaultHorizons are used when the caller gives none.
var DefaultHorizons = []int{6, 12, 24, 60}

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// Input describes the current situation and the change to simulate.
// Amounts are monthly, in the smallest currency unit. Rates are percentages.
type Input struct {
	MonthlyIncome      int64
	MonthlyExpenses    int64
	StartingSavings    int64
	AnnualInterestRate float64
	IncomeChangePct    float64
	ExpenseChangePct   float64
	Horizons           []int
}

// Projection is the savings balance after a number of months.
type Projection struct {
	Months             int
	TotalContributions int64
	InterestEarned     int64
	ProjectedBalance   int64
}

// Output compares the unchanged situation with the simulated one.
type Output struct {
	BaselineMonthlyNet int64
	ScenarioMonthlyNet int64
	Baseline           []Projection
	Scenario           []Projection
}

// Calculate projects both situations with monthly compounding:
// b(m+1) = b(m) * (1 + r/12) + net.
func Calculate(input Input) (*Output, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	horizons := normalizeHorizons(input.Horizons)
	rate := decimal.NewFromFloat(input.AnnualInterestRate).Div(hundred).Div(twelve)
	start := decimal.NewFromInt(input.StartingSavings)

	income := decimal.NewFromInt(input.MonthlyIncome)
	expenses := decimal.NewFromInt(input.MonthlyExpenses)
	baselineNet := income.Sub(expenses)

	scenarioIncome := applyChange(income, input.IncomeChangePct)
	scenarioExpenses := applyChange(expenses, input.ExpenseChangePct)
	scenarioNet := scenarioIncome.Sub(scenarioExpenses)

	return &Output{
		BaselineMonthlyNet: baselineNet.Round(0).IntPart(),
		ScenarioMonthlyNet: scenarioNet.Round(0).IntPart(),
		Baseline:           project(start, baselineNet, rate, horizons),
		Scenario:           project(start, scenarioNet, rate, horizons),
	}, nil
}

// CalculateUseCase exposes Calculate in the use case shape the controllers expect.
type CalculateUseCase struct{}

// NewCalculateUseCase creates a new CalculateUseCase instance.
func NewCalculateUseCase() *CalculateUseCase {
	return &CalculateUseCase{}
}

// Execute runs the projection.
func (uc *CalculateUseCase) Execute(_ context.Context, input Input) (*Output, error) {
	return Calculate(input)
}

func applyChange(amount decimal.Decimal, pct float64) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(pct).Div(hundred))
	return amount.Mul(factor)
}

func project(start, net, rate decimal.Decimal, horizons []int) []Projection {
	growth := decimal.NewFromInt(1).Add(rate)
	balance := start
	contributions := decimal.Zero

	out := make([]Projection, 0, len(horizons))
	next := 0
	for month := 1; next < len(horizons); month++ {
		balance = balance.Mul(growth).Add(net)
		contributions = contributions.Add(net)

		if month == horizons[next] {
			out = append(out, Projection{
				Months:             month,
				TotalContributions: contributions.Round(0).IntPart(),
				InterestEarned:     balance.Sub(start).Sub(contributions).Round(0).IntPart(),
				ProjectedBalance:   balance.Round(0).IntPart(),
			})
			next++
		}
	}
	return out
}

// normalizeHorizons sorts and deduplicates, falling back to the defaults.
func normalizeHorizons(horizons []int) []int {
	if len(horizons) == 0 {
		horizons = DefaultHorizons
	}
	out := append([]int(nil), horizons...)
	sort.Ints(out)

	uniq := out[:0]
	for i, h := range out {
		if i == 0 || h != out[i-1] {
			uniq = append(uniq, h)
		}
	}
	return uniq
}

func validate(input Input) error {
	if input.MonthlyIncome < 0 || input.MonthlyExpenses < 0 || input.StartingSavings < 0 {
		return domainerror.NewScenarioError(
			domainerror.ErrCodeInvalidScenarioAmount,
			"income, expenses and savings must not be negative",
			domainerror.ErrInvalidScenarioAmount,
		)
	}
	if input.AnnualInterestRate < 0 || input.AnnualInterestRate > 100 {
		return domainerror.NewScenarioError(
			domainerror.ErrCodeInvalidScenarioRate,
			"annual interest rate must be between 0 and 100",
			domainerror.ErrInvalidScenarioRate,
		)
	}
	if input.IncomeChangePct < -100 || input.ExpenseChangePct < -100 {
		return domainerror.NewScenarioError(
			domainerror.ErrCodeInvalidScenarioRate,
			"a change cannot remove more than 100%",
			domainerror.ErrInvalidScenarioRate,
		)
	}
	for _, h := range input.Horizons {
		if h < 1 || h > MaxHorizonMonths {
			return domainerror.NewScenarioError(
				domainerror.ErrCodeInvalidHorizon,
				"horizons must be between 1 and 600 months",
				domainerror.ErrInvalidHorizon,
			)
		}
	}
	return nil
}
