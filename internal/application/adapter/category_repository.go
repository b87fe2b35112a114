// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByUserID retrieves the user's categories, optionally narrowed to those usable
	// for the given applicability (a "both" category matches income and expense).
	FindByUserID(ctx context.Context, userID uuid.UUID, applicability *entity.CategoryApplicability) ([]*entity.Category, error)

	// Update updates an existing category.
	Update(ctx context.Context, category *entity.Category) error

	// Delete soft-deletes a category.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByNameForUser checks if a category name is taken by another of the user's categories.
	ExistsByNameForUser(ctx context.Context, userID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)

	// IsInUse checks if any live transaction references the category.
	IsInUse(ctx context.Context, id uuid.UUID) (bool, error)
}
