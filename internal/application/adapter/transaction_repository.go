// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/domain/entity"
)

// TransactionFilter represents filter options for listing transactions.
type TransactionFilter struct {
	UserID     uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	WalletID   *uuid.UUID
	CategoryID *uuid.UUID
	Type       *entity.TransactionType
	Page       int
	Limit      int
}

// TransactionListResult represents a page of transactions.
type TransactionListResult struct {
	Transactions []*entity.TransactionWithRefs
	Total        int64
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByFilter retrieves a page of transactions with their category and wallet.
	FindByFilter(ctx context.Context, filter TransactionFilter) (*TransactionListResult, error)

	// Update updates an existing transaction.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete soft-deletes a transaction.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByWalletID soft-deletes every transaction of a wallet.
	DeleteByWalletID(ctx context.Context, walletID uuid.UUID) error

	// FindRecurringTemplates retrieves recurring templates dated on or before asOf.
	// When userID is set only that user's templates are returned.
	FindRecurringTemplates(ctx context.Context, asOf time.Time, userID *uuid.UUID) ([]*entity.Transaction, error)

	// MarkProcessed advances a template's last-processed cursor.
	MarkProcessed(ctx context.Context, templateID uuid.UUID, processedAt time.Time) error
}
