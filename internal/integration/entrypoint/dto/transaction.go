package dto

import (
	"time"

	"github.com/pocketledger/backend/internal/application/usecase/transaction"
	"github.com/pocketledger/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	Type        string  `json:"type" binding:"required,oneof=expense income"`
	Amount      int64   `json:"amount" binding:"required,gt=0"`
	Date        string  `json:"date" binding:"required"`
	CategoryID  string  `json:"category_id" binding:"required,uuid"`
	WalletID    string  `json:"wallet_id" binding:"required,uuid"`
	IsRecurring bool    `json:"is_recurring,omitempty"`
	Frequency   *string `json:"frequency,omitempty"`
	Description string  `json:"description,omitempty" binding:"omitempty,max=1000"`
	ReceiptURL  string  `json:"receipt_url,omitempty" binding:"omitempty,url"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Type        *string `json:"type,omitempty" binding:"omitempty,oneof=expense income"`
	Amount      *int64  `json:"amount,omitempty"`
	Date        *string `json:"date,omitempty"`
	CategoryID  *string `json:"category_id,omitempty" binding:"omitempty,uuid"`
	WalletID    *string `json:"wallet_id,omitempty" binding:"omitempty,uuid"`
	IsRecurring *bool   `json:"is_recurring,omitempty"`
	Frequency   *string `json:"frequency,omitempty"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=1000"`
	ReceiptURL  *string `json:"receipt_url,omitempty"`
}

// TransactionRefResponse is the short form of a category or wallet attached to a transaction.
type TransactionRefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID              string                  `json:"id"`
	Name            string                  `json:"name"`
	Type            string                  `json:"type"`
	Amount          int64                   `json:"amount"`
	Date            time.Time               `json:"date"`
	CategoryID      string                  `json:"category_id"`
	Category        *TransactionRefResponse `json:"category,omitempty"`
	WalletID        string                  `json:"wallet_id"`
	Wallet          *TransactionRefResponse `json:"wallet,omitempty"`
	IsRecurring     bool                    `json:"is_recurring"`
	Frequency       *string                 `json:"frequency,omitempty"`
	TemplateID      *string                 `json:"template_id,omitempty"`
	LastProcessedAt *time.Time              `json:"last_processed_at,omitempty"`
	Description     string                  `json:"description"`
	ReceiptURL      string                  `json:"receipt_url,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// TransactionPaginationResponse represents pagination information in API responses.
type TransactionPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse         `json:"transactions"`
	Pagination   TransactionPaginationResponse `json:"pagination"`
}

// ToTransactionResponse converts a domain Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:              t.ID.String(),
		Name:            t.Name,
		Type:            string(t.Type),
		Amount:          t.Amount,
		Date:            t.Date,
		CategoryID:      t.CategoryID.String(),
		WalletID:        t.WalletID.String(),
		IsRecurring:     t.IsRecurring,
		LastProcessedAt: t.LastProcessedAt,
		Description:     t.Description,
		ReceiptURL:      t.ReceiptURL,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}

	if t.Frequency != nil {
		f := string(*t.Frequency)
		response.Frequency = &f
	}
	if t.TemplateID != nil {
		id := t.TemplateID.String()
		response.TemplateID = &id
	}

	return response
}

// ToTransactionListResponse converts a ListTransactionsOutput to a TransactionListResponse DTO.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	items := make([]TransactionResponse, len(output.Transactions))
	for i, item := range output.Transactions {
		response := ToTransactionResponse(item.Transaction)
		if item.Category != nil {
			response.Category = &TransactionRefResponse{ID: item.Category.ID.String(), Name: item.Category.Name}
		}
		if item.Wallet != nil {
			response.Wallet = &TransactionRefResponse{ID: item.Wallet.ID.String(), Name: item.Wallet.Name}
		}
		items[i] = response
	}

	return TransactionListResponse{
		Transactions: items,
		Pagination: TransactionPaginationResponse{
			Page:       output.Page,
			Limit:      output.Limit,
			Total:      output.Total,
			TotalPages: output.TotalPages,
		},
	}
}
