// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// RecurringUnit is a snapshot of a due recurring template handed to the worker.
type RecurringUnit struct {
	TemplateID   uuid.UUID
	UserID       uuid.UUID
	Name         string
	Type         TransactionType
	Amount       int64
	CategoryID   uuid.UUID
	WalletID     uuid.UUID
	Frequency    string
	Description  string
	OriginalDate time.Time
	DueDate      time.Time
}

// RecurringRun records that a template was materialized for a due date.
// (TemplateID, DueDate) is unique and serves as the worker's idempotency key.
type RecurringRun struct {
	ID            uuid.UUID
	TemplateID    uuid.UUID
	DueDate       time.Time
	TransactionID uuid.UUID
	CreatedAt     time.Time
}
