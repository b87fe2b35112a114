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
	"github.com/pocketledger/backend/internal/domain/valueobject"
	"github.com/pocketledger/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Create(model.TransactionFromEntity(transaction)).Error
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByFilter retrieves transactions based on filter criteria with pagination.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter) (*adapter.TransactionListResult, error) {
	query := r.db.WithContext(ctx).Model(&model.TransactionModel{}).
		Where("user_id = ?", filter.UserID)

	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}
	if filter.WalletID != nil {
		query = query.Where("wallet_id = ?", *filter.WalletID)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var transactionModels []model.TransactionModel
	result := query.
		Preload("Category").
		Preload("Wallet").
		Order("date DESC, created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.TransactionWithRefs, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntityWithRefs()
	}

	return &adapter.TransactionListResult{
		Transactions: transactions,
		Total:        total,
	}, nil
}

// Update writes the user-editable columns of a transaction.
// last_processed_at is owned by MarkProcessed and never written here.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	m := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"name":         m.Name,
			"type":         m.Type,
			"amount":       m.Amount,
			"date":         m.Date,
			"category_id":  m.CategoryID,
			"wallet_id":    m.WalletID,
			"is_recurring": m.IsRecurring,
			"frequency":    m.Frequency,
			"description":  m.Description,
			"receipt_url":  m.ReceiptURL,
			"updated_at":   m.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// Delete soft-deletes a transaction.
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.TransactionModel{}, "id = ?", id).Error
}

// DeleteByWalletID soft-deletes every transaction of a wallet.
func (r *transactionRepository) DeleteByWalletID(ctx context.Context, walletID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.TransactionModel{}, "wallet_id = ?", walletID).Error
}

// FindRecurringTemplates retrieves recurring templates dated on or before asOf's day.
func (r *transactionRepository) FindRecurringTemplates(ctx context.Context, asOf time.Time, userID *uuid.UUID) ([]*entity.Transaction, error) {
	endOfDay := valueobject.TruncateToDay(asOf).AddDate(0, 0, 1)

	query := r.db.WithContext(ctx).
		Where("is_recurring = ?", true).
		Where("frequency IS NOT NULL").
		Where("template_id IS NULL").
		Where("date < ?", endOfDay)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var transactionModels []model.TransactionModel
	if err := query.Order("date ASC, id ASC").Find(&transactionModels).Error; err != nil {
		return nil, err
	}

	templates := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		templates[i] = transactionModels[i].ToEntity()
	}
	return templates, nil
}

// MarkProcessed advances a template's last-processed cursor.
func (r *transactionRepository) MarkProcessed(ctx context.Context, templateID uuid.UUID, processedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("id = ? AND template_id IS NULL", templateID).
		Updates(map[string]interface{}{
			"last_processed_at": processedAt,
			"updated_at":        processedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTemplateNotFound
	}
	return nil
}
