// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/integration/persistence/model"
)

// goalRepository implements the adapter.GoalRepository interface.
type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository instance.
func NewGoalRepository(db *gorm.DB) adapter.GoalRepository {
	return &goalRepository{
		db: db,
	}
}

// Create creates a new goal in the database.
func (r *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	return r.db.WithContext(ctx).Create(model.GoalFromEntity(goal)).Error
}

// FindByID retrieves a goal by its ID.
func (r *goalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	var goalModel model.GoalModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&goalModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrGoalNotFound
		}
		return nil, result.Error
	}
	return goalModel.ToEntity(), nil
}

// FindByUserID retrieves all goals for a given user.
func (r *goalRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	var goalModels []model.GoalModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&goalModels)
	if result.Error != nil {
		return nil, result.Error
	}

	goals := make([]*entity.Goal, len(goalModels))
	for i, gm := range goalModels {
		goals[i] = gm.ToEntity()
	}
	return goals, nil
}

// Update persists name, target amount, target date and status.
func (r *goalRepository) Update(ctx context.Context, goal *entity.Goal) error {
	result := r.db.WithContext(ctx).
		Model(&model.GoalModel{}).
		Where("id = ?", goal.ID).
		Updates(map[string]interface{}{
			"name":          goal.Name,
			"target_amount": goal.TargetAmount,
			"target_date":   goal.TargetDate,
			"status":        string(goal.Status),
			"updated_at":    goal.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrGoalNotFound
	}
	return nil
}

// Delete removes a goal from the database.
func (r *goalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.GoalModel{}, "id = ?", id).Error
}

// AdjustCurrentAmount atomically adds delta to the goal's saved amount.
func (r *goalRepository) AdjustCurrentAmount(ctx context.Context, id, userID uuid.UUID, delta int64) error {
	query := r.db.WithContext(ctx).
		Model(&model.GoalModel{}).
		Where("id = ? AND user_id = ?", id, userID)
	if delta < 0 {
		query = query.Where("current_amount >= ?", -delta)
	}

	result := query.Updates(map[string]interface{}{
		"current_amount": gorm.Expr("current_amount + ?", delta),
		"updated_at":     time.Now().UTC(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var goalModel model.GoalModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&goalModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerror.ErrGoalNotFound
		}
		return err
	}
	return &domainerror.InsufficientFundsError{Available: goalModel.CurrentAmount, Requested: -delta}
}

// milestoneRepository implements the adapter.MilestoneRepository interface.
type milestoneRepository struct {
	db *gorm.DB
}

// NewMilestoneRepository creates a new milestone repository instance.
func NewMilestoneRepository(db *gorm.DB) adapter.MilestoneRepository {
	return &milestoneRepository{
		db: db,
	}
}

// CreateBatch inserts a set of milestones.
func (r *milestoneRepository) CreateBatch(ctx context.Context, milestones []*entity.Milestone) error {
	if len(milestones) == 0 {
		return nil
	}

	models := make([]*model.MilestoneModel, len(milestones))
	for i, m := range milestones {
		models[i] = model.MilestoneFromEntity(m)
	}
	return r.db.WithContext(ctx).Create(&models).Error
}

// FindByID retrieves a milestone by its ID.
func (r *milestoneRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Milestone, error) {
	var milestoneModel model.MilestoneModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&milestoneModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrMilestoneNotFound
		}
		return nil, result.Error
	}
	return milestoneModel.ToEntity(), nil
}

// FindByGoalID retrieves a goal's milestones ordered by position.
func (r *milestoneRepository) FindByGoalID(ctx context.Context, goalID uuid.UUID) ([]*entity.Milestone, error) {
	var milestoneModels []model.MilestoneModel
	result := r.db.WithContext(ctx).
		Where("goal_id = ?", goalID).
		Order("position ASC").
		Find(&milestoneModels)
	if result.Error != nil {
		return nil, result.Error
	}

	milestones := make([]*entity.Milestone, len(milestoneModels))
	for i, mm := range milestoneModels {
		milestones[i] = mm.ToEntity()
	}
	return milestones, nil
}

// FindByGoalIDs retrieves milestones for several goals, grouped by goal ID.
func (r *milestoneRepository) FindByGoalIDs(ctx context.Context, goalIDs []uuid.UUID) (map[uuid.UUID][]*entity.Milestone, error) {
	grouped := make(map[uuid.UUID][]*entity.Milestone, len(goalIDs))
	if len(goalIDs) == 0 {
		return grouped, nil
	}

	var milestoneModels []model.MilestoneModel
	result := r.db.WithContext(ctx).
		Where("goal_id IN ?", goalIDs).
		Order("position ASC").
		Find(&milestoneModels)
	if result.Error != nil {
		return nil, result.Error
	}

	for _, mm := range milestoneModels {
		grouped[mm.GoalID] = append(grouped[mm.GoalID], mm.ToEntity())
	}
	return grouped, nil
}

// Update updates an existing milestone.
func (r *milestoneRepository) Update(ctx context.Context, milestone *entity.Milestone) error {
	return r.db.WithContext(ctx).Save(model.MilestoneFromEntity(milestone)).Error
}

// DeleteByGoalID removes every milestone of a goal.
func (r *milestoneRepository) DeleteByGoalID(ctx context.Context, goalID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.MilestoneModel{}, "goal_id = ?", goalID).Error
}

// goalTransactionRepository implements the adapter.GoalTransactionRepository interface.
type goalTransactionRepository struct {
	db *gorm.DB
}

// NewGoalTransactionRepository creates a new goal transaction repository instance.
func NewGoalTransactionRepository(db *gorm.DB) adapter.GoalTransactionRepository {
	return &goalTransactionRepository{
		db: db,
	}
}

// Create inserts a ledger entry.
func (r *goalTransactionRepository) Create(ctx context.Context, entry *entity.GoalTransaction) error {
	return r.db.WithContext(ctx).Create(model.GoalTransactionFromEntity(entry)).Error
}

// FindByGoalID retrieves ledger entries in ascending creation order, with their wallet.
// Soft-deleted wallets are still resolved so history keeps their names.
func (r *goalTransactionRepository) FindByGoalID(ctx context.Context, goalID uuid.UUID, start, end *time.Time) ([]*entity.GoalTransactionWithWallet, error) {
	query := r.db.WithContext(ctx).
		Preload("Wallet", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("goal_id = ?", goalID)
	if start != nil {
		query = query.Where("created_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("created_at <= ?", *end)
	}

	var entryModels []model.GoalTransactionModel
	if err := query.Order("created_at ASC, id ASC").Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]*entity.GoalTransactionWithWallet, len(entryModels))
	for i := range entryModels {
		entries[i] = &entity.GoalTransactionWithWallet{GoalTransaction: entryModels[i].ToEntity()}
		if entryModels[i].Wallet != nil {
			entries[i].Wallet = entryModels[i].Wallet.ToEntity()
		}
	}
	return entries, nil
}

// SumBefore returns the sum of a goal's entries created before the given time.
func (r *goalTransactionRepository) SumBefore(ctx context.Context, goalID uuid.UUID, before time.Time) (int64, error) {
	var total int64
	result := r.db.WithContext(ctx).
		Model(&model.GoalTransactionModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("goal_id = ? AND created_at < ?", goalID, before).
		Scan(&total)
	if result.Error != nil {
		return 0, result.Error
	}
	return total, nil
}

// SumByGoalID returns the sum of all entries of a goal.
func (r *goalTransactionRepository) SumByGoalID(ctx context.Context, goalID uuid.UUID) (int64, error) {
	var total int64
	result := r.db.WithContext(ctx).
		Model(&model.GoalTransactionModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("goal_id = ?", goalID).
		Scan(&total)
	if result.Error != nil {
		return 0, result.Error
	}
	return total, nil
}

// SumByWallet returns the net allocation per wallet.
func (r *goalTransactionRepository) SumByWallet(ctx context.Context, goalID uuid.UUID) ([]entity.WalletAllocation, error) {
	var rows []struct {
		WalletID uuid.UUID
		Total    int64
	}
	result := r.db.WithContext(ctx).
		Model(&model.GoalTransactionModel{}).
		Select("wallet_id, COALESCE(SUM(amount), 0) AS total").
		Where("goal_id = ? AND wallet_id IS NOT NULL", goalID).
		Group("wallet_id").
		Order("wallet_id").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	allocations := make([]entity.WalletAllocation, len(rows))
	for i, row := range rows {
		allocations[i] = entity.WalletAllocation{WalletID: row.WalletID, Amount: row.Total}
	}
	return allocations, nil
}

// DeleteByGoalID removes every entry of a goal.
func (r *goalTransactionRepository) DeleteByGoalID(ctx context.Context, goalID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.GoalTransactionModel{}, "goal_id = ?", goalID).Error
}

// DetachWallet clears the wallet reference of entries pointing at a deleted wallet.
func (r *goalTransactionRepository) DetachWallet(ctx context.Context, walletID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.GoalTransactionModel{}).
		Where("wallet_id = ?", walletID).
		Update("wallet_id", nil).Error
}
