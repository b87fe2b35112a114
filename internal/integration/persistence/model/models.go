// Package model defines database models for persistence layer.
package model

// All returns every model managed by auto-migration, parents first.
func All() []interface{} {
	return []interface{}{
		&WalletModel{},
		&CategoryModel{},
		&TransactionModel{},
		&GoalModel{},
		&MilestoneModel{},
		&GoalTransactionModel{},
		&RecurringRunModel{},
		&EmailQueueModel{},
	}
}
