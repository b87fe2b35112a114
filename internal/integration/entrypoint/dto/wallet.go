package dto

import (
	"time"

	"github.com/pocketledger/backend/internal/application/usecase/wallet"
	"github.com/pocketledger/backend/internal/domain/entity"
)

// CreateWalletRequest represents the request body for wallet creation.
type CreateWalletRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=100"`
	Category       string `json:"category" binding:"required,oneof=bank e-wallet cash"`
	InitialBalance int64  `json:"initial_balance" binding:"gte=0"`
}

// UpdateWalletRequest represents the request body for wallet update.
// The balance is not part of the request; it only moves through transactions and goal transfers.
type UpdateWalletRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Category *string `json:"category,omitempty" binding:"omitempty,oneof=bank e-wallet cash"`
}

// WalletResponse represents a single wallet in API responses.
type WalletResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WalletListResponse represents the response for listing wallets.
type WalletListResponse struct {
	Wallets      []WalletResponse `json:"wallets"`
	TotalBalance int64            `json:"total_balance"`
}

// ToWalletResponse converts a domain Wallet entity to a WalletResponse DTO.
func ToWalletResponse(w *entity.Wallet) WalletResponse {
	return WalletResponse{
		ID:        w.ID.String(),
		Name:      w.Name,
		Category:  string(w.Category),
		Balance:   w.Balance,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// ToWalletListResponse converts a ListWalletsOutput to a WalletListResponse DTO.
func ToWalletListResponse(output *wallet.ListWalletsOutput) WalletListResponse {
	wallets := make([]WalletResponse, len(output.Wallets))
	for i, w := range output.Wallets {
		wallets[i] = ToWalletResponse(w)
	}
	return WalletListResponse{
		Wallets:      wallets,
		TotalBalance: output.TotalBalance,
	}
}
