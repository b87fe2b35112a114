// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/domain/entity"
)

// WalletRepository defines the interface for wallet persistence operations.
// Balances are only changed through AdjustBalance and Debit.
type WalletRepository interface {
	// Create creates a new wallet in the database.
	Create(ctx context.Context, wallet *entity.Wallet) error

	// FindByID retrieves a wallet by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Wallet, error)

	// FindByUserID retrieves all wallets for a given user.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Wallet, error)

	// Update persists the wallet's name and category. The balance column is never written.
	Update(ctx context.Context, wallet *entity.Wallet) error

	// Delete soft-deletes a wallet.
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustBalance atomically adds delta to the wallet balance.
	AdjustBalance(ctx context.Context, id, userID uuid.UUID, delta int64) error

	// Debit atomically subtracts amount when the balance covers it.
	// Returns an InsufficientFundsError carrying the current balance otherwise.
	Debit(ctx context.Context, id, userID uuid.UUID, amount int64) error
}
