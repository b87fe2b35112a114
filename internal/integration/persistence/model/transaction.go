// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pocketledger/backend/internal/domain/entity"
	"github.com/pocketledger/backend/internal/domain/valueobject"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name            string     `gorm:"type:varchar(255);not null"`
	Type            string     `gorm:"type:varchar(10);not null"`
	Amount          int64      `gorm:"not null"`
	Date            time.Time  `gorm:"not null;index"`
	CategoryID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	WalletID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	IsRecurring     bool       `gorm:"not null;default:false;index"`
	Frequency       *string    `gorm:"type:varchar(10)"`
	TemplateID      *uuid.UUID `gorm:"type:uuid;index"`
	LastProcessedAt *time.Time
	Description     string         `gorm:"type:text"`
	ReceiptURL      string         `gorm:"type:text"`
	CreatedAt       time.Time      `gorm:"not null"`
	UpdatedAt       time.Time      `gorm:"not null"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`

	// Relations, loaded with Preload on list queries
	Category *CategoryModel `gorm:"foreignKey:CategoryID"`
	Wallet   *WalletModel   `gorm:"foreignKey:WalletID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	var frequency *valueobject.Frequency
	if m.Frequency != nil {
		f := valueobject.Frequency(*m.Frequency)
		frequency = &f
	}

	return &entity.Transaction{
		ID:              m.ID,
		UserID:          m.UserID,
		Name:            m.Name,
		Type:            entity.TransactionType(m.Type),
		Amount:          m.Amount,
		Date:            m.Date,
		CategoryID:      m.CategoryID,
		WalletID:        m.WalletID,
		IsRecurring:     m.IsRecurring,
		Frequency:       frequency,
		TemplateID:      m.TemplateID,
		LastProcessedAt: m.LastProcessedAt,
		Description:     m.Description,
		ReceiptURL:      m.ReceiptURL,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		DeletedAt:       deletedAt,
	}
}

// ToEntityWithRefs converts the model and its preloaded relations.
func (m *TransactionModel) ToEntityWithRefs() *entity.TransactionWithRefs {
	result := &entity.TransactionWithRefs{Transaction: m.ToEntity()}
	if m.Category != nil {
		result.Category = m.Category.ToEntity()
	}
	if m.Wallet != nil {
		result.Wallet = m.Wallet.ToEntity()
	}
	return result
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	var deletedAt gorm.DeletedAt
	if transaction.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *transaction.DeletedAt, Valid: true}
	}

	var frequency *string
	if transaction.Frequency != nil {
		f := string(*transaction.Frequency)
		frequency = &f
	}

	return &TransactionModel{
		ID:              transaction.ID,
		UserID:          transaction.UserID,
		Name:            transaction.Name,
		Type:            string(transaction.Type),
		Amount:          transaction.Amount,
		Date:            transaction.Date,
		CategoryID:      transaction.CategoryID,
		WalletID:        transaction.WalletID,
		IsRecurring:     transaction.IsRecurring,
		Frequency:       frequency,
		TemplateID:      transaction.TemplateID,
		LastProcessedAt: transaction.LastProcessedAt,
		Description:     transaction.Description,
		ReceiptURL:      transaction.ReceiptURL,
		CreatedAt:       transaction.CreatedAt,
		UpdatedAt:       transaction.UpdatedAt,
		DeletedAt:       deletedAt,
	}
}
