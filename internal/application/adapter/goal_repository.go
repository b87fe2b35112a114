// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/domain/entity"
)

// GoalRepository defines the interface for goal persistence operations.
type GoalRepository interface {
	// Create creates a new goal in the database.
	Create(ctx context.Context, goal *entity.Goal) error

	// FindByID retrieves a goal by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)

	// FindByUserID retrieves all goals for a given user.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error)

	// Update persists name, target amount, target date and status.
	// The current amount is only changed through AdjustCurrentAmount.
	Update(ctx context.Context, goal *entity.Goal) error

	// Delete removes a goal from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustCurrentAmount atomically adds delta to the goal's saved amount.
	// A negative delta larger than the saved amount fails with InsufficientFundsError.
	AdjustCurrentAmount(ctx context.Context, id, userID uuid.UUID, delta int64) error
}

// MilestoneRepository defines the interface for milestone persistence operations.
type MilestoneRepository interface {
	// CreateBatch inserts a set of milestones.
	CreateBatch(ctx context.Context, milestones []*entity.Milestone) error

	// FindByID retrieves a milestone by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Milestone, error)

	// FindByGoalID retrieves a goal's milestones ordered by their order field.
	FindByGoalID(ctx context.Context, goalID uuid.UUID) ([]*entity.Milestone, error)

	// FindByGoalIDs retrieves milestones for several goals, grouped by goal ID.
	FindByGoalIDs(ctx context.Context, goalIDs []uuid.UUID) (map[uuid.UUID][]*entity.Milestone, error)

	// Update updates an existing milestone.
	Update(ctx context.Context, milestone *entity.Milestone) error

	// DeleteByGoalID removes every milestone of a goal.
	DeleteByGoalID(ctx context.Context, goalID uuid.UUID) error
}

// GoalTransactionRepository defines the interface for the goal transfer ledger.
// Entries are insert-only.
type GoalTransactionRepository interface {
	// Create inserts a ledger entry.
	Create(ctx context.Context, entry *entity.GoalTransaction) error

	// FindByGoalID retrieves ledger entries in ascending creation order, with their wallet.
	// Entries outside the optional [start, end] range are excluded.
	FindByGoalID(ctx context.Context, goalID uuid.UUID, start, end *time.Time) ([]*entity.GoalTransactionWithWallet, error)

	// SumBefore returns the sum of a goal's entries created before the given time.
	SumBefore(ctx context.Context, goalID uuid.UUID, before time.Time) (int64, error)

	// SumByWallet returns the net allocation per wallet. Entries without a wallet are excluded.
	SumByWallet(ctx context.Context, goalID uuid.UUID) ([]entity.WalletAllocation, error)

	// SumByGoalID returns the sum of all entries of a goal.
	SumByGoalID(ctx context.Context, goalID uuid.UUID) (int64, error)

	// DeleteByGoalID removes every entry of a goal.
	DeleteByGoalID(ctx context.Context, goalID uuid.UUID) error

	// DetachWallet clears the wallet reference of entries pointing at a deleted wallet.
	DetachWallet(ctx context.Context, walletID uuid.UUID) error
}
