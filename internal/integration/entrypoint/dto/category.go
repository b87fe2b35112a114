package dto

import (
	"time"

	"github.com/pocketledger/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=50"`
	Applicability string `json:"applicability" binding:"required,oneof=income expense both"`
}

// UpdateCategoryRequest represents the request body for category update.
type UpdateCategoryRequest struct {
	Name          *string `json:"name,omitempty" binding:"omitempty,min=1,max=50"`
	Applicability *string `json:"applicability,omitempty" binding:"omitempty,oneof=income expense both"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Applicability string    `json:"applicability"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:            c.ID.String(),
		Name:          c.Name,
		Applicability: string(c.Applicability),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// ToCategoryListResponse converts categories to a CategoryListResponse DTO.
func ToCategoryListResponse(categories []*entity.Category) CategoryListResponse {
	items := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		items[i] = ToCategoryResponse(c)
	}
	return CategoryListResponse{Categories: items}
}
