// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/domain/entity"
)

// RecurringRunModel represents the recurring_runs table in the database.
type RecurringRunModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TemplateID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recurring_runs_template_due"`
	DueDate       time.Time `gorm:"not null;uniqueIndex:idx_recurring_runs_template_due"`
	TransactionID uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the RecurringRunModel.
func (RecurringRunModel) TableName() string {
	return "recurring_runs"
}

// RecurringRunFromEntity creates a RecurringRunModel from a domain RecurringRun entity.
func RecurringRunFromEntity(run *entity.RecurringRun) *RecurringRunModel {
	return &RecurringRunModel{
		ID:            run.ID,
		TemplateID:    run.TemplateID,
		DueDate:       run.DueDate,
		TransactionID: run.TransactionID,
		CreatedAt:     run.CreatedAt,
	}
}
