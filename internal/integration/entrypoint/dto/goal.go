package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/usecase/goal"
	"github.com/pocketledger/backend/internal/domain/entity"
)

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Name                 string  `json:"name" binding:"required,min=1,max=100"`
	TargetAmount         int64   `json:"target_amount" binding:"required,gt=0"`
	TargetDate           *string `json:"target_date,omitempty"`
	MilestonePace        string  `json:"milestone_pace,omitempty" binding:"omitempty,oneof=aggressive moderate relaxed"`
	CustomMilestoneCount *int    `json:"custom_milestone_count,omitempty"`
}

// UpdateGoalRequest represents the request body for goal update.
type UpdateGoalRequest struct {
	Name            *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	TargetAmount    *int64  `json:"target_amount,omitempty"`
	TargetDate      *string `json:"target_date,omitempty"`
	ClearTargetDate bool    `json:"clear_target_date,omitempty"`
	Status          *string `json:"status,omitempty" binding:"omitempty,oneof=active completed cancelled"`
}

// GoalTransferRequest represents the request body for moving money between a wallet and a goal.
type GoalTransferRequest struct {
	WalletID string `json:"wallet_id" binding:"required,uuid"`
	Amount   int64  `json:"amount" binding:"required"`
}

// RegenerateMilestonesRequest represents the request body for milestone regeneration.
type RegenerateMilestonesRequest struct {
	MilestonePace        string `json:"milestone_pace,omitempty" binding:"omitempty,oneof=aggressive moderate relaxed"`
	CustomMilestoneCount *int   `json:"custom_milestone_count,omitempty"`
}

// UpdateMilestoneRequest represents the request body for milestone update.
type UpdateMilestoneRequest struct {
	Name            *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Advice          *string `json:"advice,omitempty" binding:"omitempty,max=500"`
	TargetDate      *string `json:"target_date,omitempty"`
	ClearTargetDate bool    `json:"clear_target_date,omitempty"`
}

// MilestoneResponse represents a single milestone in API responses.
type MilestoneResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Advice       string     `json:"advice,omitempty"`
	TargetAmount int64      `json:"target_amount"`
	TargetDate   *string    `json:"target_date,omitempty"`
	Order        int        `json:"order"`
	IsCompleted  bool       `json:"is_completed"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// GoalResponse represents a single goal with its milestones in API responses.
type GoalResponse struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	TargetAmount  int64               `json:"target_amount"`
	CurrentAmount int64               `json:"current_amount"`
	TargetDate    *string             `json:"target_date,omitempty"`
	Status        string              `json:"status"`
	Milestones    []MilestoneResponse `json:"milestones"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// AddAmountResponse represents the result of a wallet to goal transfer.
type AddAmountResponse struct {
	Goal                     GoalResponse        `json:"goal"`
	NewlyCompletedMilestones []MilestoneResponse `json:"newly_completed_milestones"`
	IsGoalCompleted          bool                `json:"is_goal_completed"`
}

// RemoveAmountResponse represents the result of a goal to wallet transfer.
type RemoveAmountResponse struct {
	Goal GoalResponse `json:"goal"`
}

// DeleteGoalResponse reports the amounts credited back to each wallet.
type DeleteGoalResponse struct {
	Success         bool             `json:"success"`
	ReturnedAmounts map[string]int64 `json:"returned_amounts"`
}

// GoalHistoryEntryResponse is one row of a goal's transfer history.
type GoalHistoryEntryResponse struct {
	ID                string          `json:"id"`
	Date              time.Time       `json:"date"`
	Amount            int64           `json:"amount"`
	TransactionAmount int64           `json:"transaction_amount"`
	Description       string          `json:"description"`
	Wallet            *WalletResponse `json:"wallet,omitempty"`
}

// GoalHistoryResponse represents a goal's transfer history with running totals.
type GoalHistoryResponse struct {
	OpeningAmount int64                      `json:"opening_amount"`
	Entries       []GoalHistoryEntryResponse `json:"entries"`
}

// ToMilestoneResponse converts a domain Milestone entity to a MilestoneResponse DTO.
func ToMilestoneResponse(m *entity.Milestone) MilestoneResponse {
	return MilestoneResponse{
		ID:           m.ID.String(),
		Name:         m.Name,
		Advice:       m.Advice,
		TargetAmount: m.TargetAmount,
		TargetDate:   FormatDate(m.TargetDate),
		Order:        m.Order,
		IsCompleted:  m.IsCompleted,
		CompletedAt:  m.CompletedAt,
	}
}

// ToGoalResponse converts a goal and its milestones to a GoalResponse DTO.
func ToGoalResponse(g *entity.GoalWithMilestones) GoalResponse {
	milestones := make([]MilestoneResponse, len(g.Milestones))
	for i, m := range g.Milestones {
		milestones[i] = ToMilestoneResponse(m)
	}

	return GoalResponse{
		ID:            g.Goal.ID.String(),
		Name:          g.Goal.Name,
		TargetAmount:  g.Goal.TargetAmount,
		CurrentAmount: g.Goal.CurrentAmount,
		TargetDate:    FormatDate(g.Goal.TargetDate),
		Status:        string(g.Goal.Status),
		Milestones:    milestones,
		CreatedAt:     g.Goal.CreatedAt,
		UpdatedAt:     g.Goal.UpdatedAt,
	}
}

// ToGoalListResponse converts goals to a GoalListResponse DTO.
func ToGoalListResponse(goals []*entity.GoalWithMilestones) GoalListResponse {
	items := make([]GoalResponse, len(goals))
	for i, g := range goals {
		items[i] = ToGoalResponse(g)
	}
	return GoalListResponse{Goals: items}
}

// ToAddAmountResponse converts an AddAmountOutput to an AddAmountResponse DTO.
func ToAddAmountResponse(output *goal.AddAmountOutput) AddAmountResponse {
	completed := make(map[uuid.UUID]bool, len(output.NewlyCompletedMilestoneIDs))
	for _, id := range output.NewlyCompletedMilestoneIDs {
		completed[id] = true
	}

	newly := make([]MilestoneResponse, 0, len(completed))
	for _, m := range output.Goal.Milestones {
		if completed[m.ID] {
			newly = append(newly, ToMilestoneResponse(m))
		}
	}

	return AddAmountResponse{
		Goal:                     ToGoalResponse(output.Goal),
		NewlyCompletedMilestones: newly,
		IsGoalCompleted:          output.IsGoalCompleted,
	}
}

// ToDeleteGoalResponse converts a DeleteGoalOutput to a DeleteGoalResponse DTO.
func ToDeleteGoalResponse(output *goal.DeleteGoalOutput) DeleteGoalResponse {
	returned := make(map[string]int64, len(output.ReturnedAmounts))
	for walletID, amount := range output.ReturnedAmounts {
		returned[walletID.String()] = amount
	}
	return DeleteGoalResponse{Success: true, ReturnedAmounts: returned}
}

// ToGoalHistoryResponse converts a GetTransactionHistoryOutput to a GoalHistoryResponse DTO.
func ToGoalHistoryResponse(output *goal.GetTransactionHistoryOutput) GoalHistoryResponse {
	entries := make([]GoalHistoryEntryResponse, len(output.Entries))
	for i, e := range output.Entries {
		entry := GoalHistoryEntryResponse{
			ID:                e.ID.String(),
			Date:              e.Date,
			Amount:            e.CumulativeAmount,
			TransactionAmount: e.TransactionAmount,
			Description:       e.Description,
		}
		if e.Wallet != nil {
			w := ToWalletResponse(e.Wallet)
			entry.Wallet = &w
		}
		entries[i] = entry
	}
	return GoalHistoryResponse{OpeningAmount: output.OpeningAmount, Entries: entries}
}
