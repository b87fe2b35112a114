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

// walletRepository implements the adapter.WalletRepository interface.
type walletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a new wallet repository instance.
func NewWalletRepository(db *gorm.DB) adapter.WalletRepository {
	return &walletRepository{
		db: db,
	}
}

// Create creates a new wallet in the database.
func (r *walletRepository) Create(ctx context.Context, wallet *entity.Wallet) error {
	return r.db.WithContext(ctx).Create(model.WalletFromEntity(wallet)).Error
}

// FindByID retrieves a wallet by its ID.
func (r *walletRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Wallet, error) {
	var walletModel model.WalletModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&walletModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrWalletNotFound
		}
		return nil, result.Error
	}
	return walletModel.ToEntity(), nil
}

// FindByUserID retrieves all wallets for a given user.
func (r *walletRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Wallet, error) {
	var walletModels []model.WalletModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&walletModels)
	if result.Error != nil {
		return nil, result.Error
	}

	wallets := make([]*entity.Wallet, len(walletModels))
	for i, wm := range walletModels {
		wm := wm
		wallets[i] = wm.ToEntity()
	}
	return wallets, nil
}

// Update persists the wallet's name and category.
func (r *walletRepository) Update(ctx context.Context, wallet *entity.Wallet) error {
	result := r.db.WithContext(ctx).
		Model(&model.WalletModel{}).
		Where("id = ?", wallet.ID).
		Updates(map[string]interface{}{
			"name":       wallet.Name,
			"category":   string(wallet.Category),
			"updated_at": wallet.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrWalletNotFound
	}
	return nil
}

// Delete soft-deletes a wallet.
func (r *walletRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.WalletModel{}, "id = ?", id).Error
}

// AdjustBalance atomically adds delta to the wallet balance.
func (r *walletRepository) AdjustBalance(ctx context.Context, id, userID uuid.UUID, delta int64) error {
	result := r.db.WithContext(ctx).
		Model(&model.WalletModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", delta),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrWalletNotFound
	}
	return nil
}

// Debit atomically subtracts amount when the balance covers it.
func (r *walletRepository) Debit(ctx context.Context, id, userID uuid.UUID, amount int64) error {
	result := r.db.WithContext(ctx).
		Model(&model.WalletModel{}).
		Where("id = ? AND user_id = ? AND balance >= ?", id, userID, amount).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance - ?", amount),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Nothing matched: either the wallet is gone or the balance is short.
	var walletModel model.WalletModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&walletModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerror.ErrWalletNotFound
		}
		return err
	}
	return &domainerror.InsufficientFundsError{Available: walletModel.Balance, Requested: amount}
}
