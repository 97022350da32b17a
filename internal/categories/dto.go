package category

import (
	"time"

	"github.com/Meseret1G/inventory-management-system/pkg/db/models"
	"github.com/google/uuid"
)

// CreateCategoryInput holds the validated payload to create a category.
type CreateCategoryInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

// UpdateCategoryInput holds the validated payload to rename a category.
type UpdateCategoryInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

// CategoryDTO is the public shape of a category.
type CategoryDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ProductCount int64     `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CategoryListResult wraps the full category listing.
type CategoryListResult struct {
	Count      int           `json:"count"`
	Categories []CategoryDTO `json:"categories"`
}

// NewCategoryDTO maps the persisted model and its product count to the public shape.
func NewCategoryDTO(category *models.Category, productCount int64) *CategoryDTO {
	if category == nil {
		return nil
	}
	return &CategoryDTO{
		ID:           category.ID,
		Name:         category.Name,
		ProductCount: productCount,
		CreatedAt:    category.CreatedAt,
		UpdatedAt:    category.UpdatedAt,
	}
}
