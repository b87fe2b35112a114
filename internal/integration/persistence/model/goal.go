// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/domain/entity"
)

// GoalModel represents the goals table in the database.
type GoalModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Name          string    `gorm:"type:varchar(255);not null"`
	TargetAmount  int64     `gorm:"not null"`
	CurrentAmount int64     `gorm:"not null;default:0"`
	TargetDate    *time.Time
	Status        string    `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ToEntity converts a GoalModel to a domain Goal entity.
func (m *GoalModel) ToEntity() *entity.Goal {
	return &entity.Goal{
		ID:            m.ID,
		UserID:        m.UserID,
		Name:          m.Name,
		TargetAmount:  m.TargetAmount,
		CurrentAmount: m.CurrentAmount,
		TargetDate:    m.TargetDate,
		Status:        entity.GoalStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// GoalFromEntity creates a GoalModel from a domain Goal entity.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	return &GoalModel{
		ID:            goal.ID,
		UserID:        goal.UserID,
		Name:          goal.Name,
		TargetAmount:  goal.TargetAmount,
		CurrentAmount: goal.CurrentAmount,
		TargetDate:    goal.TargetDate,
		Status:        string(goal.Status),
		CreatedAt:     goal.CreatedAt,
		UpdatedAt:     goal.UpdatedAt,
	}
}

// MilestoneModel represents the milestones table in the database.
type MilestoneModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	GoalID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:varchar(255);not null"`
	TargetAmount int64     `gorm:"not null"`
	TargetDate   *time.Time
	Position     int  `gorm:"not null"`
	IsCompleted  bool `gorm:"not null;default:false"`
	CompletedAt  *time.Time
	Advice       string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the MilestoneModel.
func (MilestoneModel) TableName() string {
	return "milestones"
}

// ToEntity converts a MilestoneModel to a domain Milestone entity.
func (m *MilestoneModel) ToEntity() *entity.Milestone {
	return &entity.Milestone{
		ID:           m.ID,
		GoalID:       m.GoalID,
		Name:         m.Name,
		TargetAmount: m.TargetAmount,
		TargetDate:   m.TargetDate,
		Order:        m.Position,
		IsCompleted:  m.IsCompleted,
		CompletedAt:  m.CompletedAt,
		Advice:       m.Advice,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// MilestoneFromEntity creates a MilestoneModel from a domain Milestone entity.
func MilestoneFromEntity(milestone *entity.Milestone) *MilestoneModel {
	return &MilestoneModel{
		ID:           milestone.ID,
		GoalID:       milestone.GoalID,
		Name:         milestone.Name,
		TargetAmount: milestone.TargetAmount,
		TargetDate:   milestone.TargetDate,
		Position:     milestone.Order,
		IsCompleted:  milestone.IsCompleted,
		CompletedAt:  milestone.CompletedAt,
		Advice:       milestone.Advice,
		CreatedAt:    milestone.CreatedAt,
		UpdatedAt:    milestone.UpdatedAt,
	}
}

// GoalTransactionModel represents the goal_transactions table in the database.
type GoalTransactionModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	GoalID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	WalletID    *uuid.UUID `gorm:"type:uuid;index"`
	Amount      int64      `gorm:"not null"`
	Description string     `gorm:"type:text"`
	CreatedAt   time.Time  `gorm:"not null;index"`

	Wallet *WalletModel `gorm:"foreignKey:WalletID"`
}

// TableName returns the table name for the GoalTransactionModel.
func (GoalTransactionModel) TableName() string {
	return "goal_transactions"
}

// ToEntity converts a GoalTransactionModel to a domain GoalTransaction entity.
func (m *GoalTransactionModel) ToEntity() *entity.GoalTransaction {
	return &entity.GoalTransaction{
		ID:          m.ID,
		GoalID:      m.GoalID,
		UserID:      m.UserID,
		WalletID:    m.WalletID,
		Amount:      m.Amount,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

// GoalTransactionFromEntity creates a GoalTransactionModel from a domain GoalTransaction entity.
func GoalTransactionFromEntity(entry *entity.GoalTransaction) *GoalTransactionModel {
	return &GoalTransactionModel{
		ID:          entry.ID,
		GoalID:      entry.GoalID,
		UserID:      entry.UserID,
		WalletID:    entry.WalletID,
		Amount:      entry.Amount,
		Description: entry.Description,
		CreatedAt:   entry.CreatedAt,
	}
}
