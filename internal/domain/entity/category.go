// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryApplicability represents which transaction types a category can be used for.
type CategoryApplicability string

const (
	CategoryApplicabilityIncome  CategoryApplicability = "income"
	CategoryApplicabilityExpense CategoryApplicability = "expense"
	CategoryApplicabilityBoth    CategoryApplicability = "both"
)

// IsValid reports whether the applicability is one of the known values.
func (a CategoryApplicability) IsValid() bool {
	switch a {
	case CategoryApplicabilityIncome, CategoryApplicabilityExpense, CategoryApplicabilityBoth:
		return true
	}
	return false
}

// Category represents a transaction category.
type Category struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	Applicability CategoryApplicability
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// NewCategory creates a new Category entity.
func NewCategory(userID uuid.UUID, name string, applicability CategoryApplicability) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          name,
		Applicability: applicability,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// BelongsTo reports whether the category is owned by the given user.
func (c *Category) BelongsTo(userID uuid.UUID) bool {
	return c != nil && c.UserID == userID
}
