// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// GoalTransaction is an immutable ledger entry for a transfer into or out of a goal.
// Amount is positive for allocations into the goal and negative for withdrawals.
// WalletID is nil once the wallet has been deleted.
type GoalTransaction struct {
	ID          uuid.UUID
	GoalID      uuid.UUID
	UserID      uuid.UUID
	WalletID    *uuid.UUID
	Amount      int64
	Description string
	CreatedAt   time.Time
}

// NewGoalTransaction creates a new goal ledger entry.
func NewGoalTransaction(goalID, userID, walletID uuid.UUID, amount int64, description string) *GoalTransaction {
	return &GoalTransaction{
		ID:          uuid.New(),
		GoalID:      goalID,
		UserID:      userID,
		WalletID:    &walletID,
		Amount:      amount,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
}

// GoalTransactionWithWallet is a goal ledger entry joined with its wallet.
type GoalTransactionWithWallet struct {
	GoalTransaction *GoalTransaction
	Wallet          *Wallet
}

// WalletAllocation is the net amount a wallet has allocated into a goal.
type WalletAllocation struct {
	WalletID uuid.UUID
	Amount   int64
}
