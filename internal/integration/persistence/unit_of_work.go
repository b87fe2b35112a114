// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/pocketledger/backend/internal/application/adapter"
)

// unitOfWork implements adapter.UnitOfWork on top of gorm transactions.
type unitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a new unit of work bound to db.
func NewUnitOfWork(db *gorm.DB) adapter.UnitOfWork {
	return &unitOfWork{db: db}
}

// Do runs fn inside one database transaction.
func (u *unitOfWork) Do(ctx context.Context, fn func(repos adapter.Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

// NewRepositories builds the full repository set over db.
func NewRepositories(db *gorm.DB) adapter.Repositories {
	return adapter.Repositories{
		Wallets:          NewWalletRepository(db),
		Categories:       NewCategoryRepository(db),
		Transactions:     NewTransactionRepository(db),
		Goals:            NewGoalRepository(db),
		Milestones:       NewMilestoneRepository(db),
		GoalTransactions: NewGoalTransactionRepository(db),
		RecurringRuns:    NewRecurringRunRepository(db),
	}
}
