// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	"github.com/pocketledger/backend/internal/integration/persistence/model"
)

// recurringRunRepository implements the adapter.RecurringRunRepository interface.
type recurringRunRepository struct {
	db *gorm.DB
}

// NewRecurringRunRepository creates a new recurring run repository instance.
func NewRecurringRunRepository(db *gorm.DB) adapter.RecurringRunRepository {
	return &recurringRunRepository{
		db: db,
	}
}

// Claim inserts the run record unless (template_id, due_date) already exists.
func (r *recurringRunRepository) Claim(ctx context.Context, run *entity.RecurringRun) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "template_id"}, {Name: "due_date"}},
			DoNothing: true,
		}).
		Create(model.RecurringRunFromEntity(run))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
