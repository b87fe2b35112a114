// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// WalletCategory represents the kind of wallet.
type WalletCategory string

const (
	WalletCategoryBank    WalletCategory = "bank"
	WalletCategoryEWallet WalletCategory = "e-wallet"
	WalletCategoryCash    WalletCategory = "cash"
)

// IsValid reports whether the wallet category is one of the known values.
func (c WalletCategory) IsValid() bool {
	switch c {
	case WalletCategoryBank, WalletCategoryEWallet, WalletCategoryCash:
		return true
	}
	return false
}

// Wallet represents a store of money owned by a user.
// Balance is expressed in the smallest currency unit.
type Wallet struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Category  WalletCategory
	Balance   int64
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewWallet creates a new Wallet entity.
func NewWallet(userID uuid.UUID, name string, category WalletCategory, initialBalance int64) *Wallet {
	now := time.Now().UTC()

	return &Wallet{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Category:  category,
		Balance:   initialBalance,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// BelongsTo reports whether the wallet is owned by the given user.
func (w *Wallet) BelongsTo(userID uuid.UUID) bool {
	return w != nil && w.UserID == userID
}
