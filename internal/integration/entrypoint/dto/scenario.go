package dto

import "github.com/pocketledger/backend/internal/application/usecase/scenario"

// ScenarioRequest represents the request body for a savings projection.
type ScenarioRequest struct {
	MonthlyIncome      int64   `json:"monthly_income" binding:"gte=0"`
	MonthlyExpenses    int64   `json:"monthly_expenses" binding:"gte=0"`
	StartingSavings    int64   `json:"starting_savings" binding:"gte=0"`
	AnnualInterestRate float64 `json:"annual_interest_rate"`
	IncomeChangePct    float64 `json:"income_change_pct"`
	ExpenseChangePct   float64 `json:"expense_change_pct"`
	Horizons           []int   `json:"horizons,omitempty"`
}

// ProjectionResponse is the projected outcome at one horizon.
type ProjectionResponse struct {
	Months             int   `json:"months"`
	TotalContributions int64 `json:"total_contributions"`
	InterestEarned     int64 `json:"interest_earned"`
	ProjectedBalance   int64 `json:"projected_balance"`
}

// ScenarioResponse compares the current plan with the adjusted scenario.
type ScenarioResponse struct {
	BaselineMonthlyNet int64                `json:"baseline_monthly_net"`
	ScenarioMonthlyNet int64                `json:"scenario_monthly_net"`
	Baseline           []ProjectionResponse `json:"baseline"`
	Scenario           []ProjectionResponse `json:"scenario"`
}

// ToScenarioInput converts a ScenarioRequest to a scenario.Input.
func (r ScenarioRequest) ToScenarioInput() scenario.Input {
	return scenario.Input{
		MonthlyIncome:      r.MonthlyIncome,
		MonthlyExpenses:    r.MonthlyExpenses,
		StartingSavings:    r.StartingSavings,
		AnnualInterestRate: r.AnnualInterestRate,
		IncomeChangePct:    r.IncomeChangePct,
		ExpenseChangePct:   r.ExpenseChangePct,
		Horizons:           r.Horizons,
	}
}

// ToScenarioResponse converts a scenario.Output to a ScenarioResponse DTO.
func ToScenarioResponse(output *scenario.Output) ScenarioResponse {
	return ScenarioResponse{
		BaselineMonthlyNet: output.BaselineMonthlyNet,
		ScenarioMonthlyNet: output.ScenarioMonthlyNet,
		Baseline:           toProjections(output.Baseline),
		Scenario:           toProjections(output.Scenario),
	}
}

func toProjections(projections []scenario.Projection) []ProjectionResponse {
	out := make([]ProjectionResponse, len(projections))
	for i, p := range projections {
		out[i] = ProjectionResponse(p)
	}
	return out
}
