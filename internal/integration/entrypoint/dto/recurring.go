package dto

import "github.com/pocketledger/backend/internal/application/usecase/recurring"

// ProcessNowResponse represents the summary of an on-demand recurring run.
type ProcessNowResponse struct {
	Summary recurring.Summary `json:"summary"`
}
