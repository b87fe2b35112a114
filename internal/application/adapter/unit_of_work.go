// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// Repositories groups the ledger repositories bound to one database transaction.
type Repositories struct {
	Wallets          WalletRepository
	Categories       CategoryRepository
	Transactions     TransactionRepository
	Goals            GoalRepository
	Milestones       MilestoneRepository
	GoalTransactions GoalTransactionRepository
	RecurringRuns    RecurringRunRepository
}

// UnitOfWork runs a function against transaction-scoped repositories.
// The transaction commits when fn returns nil and rolls back otherwise.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos Repositories) error) error
}
