package product

import (
	"time"

	"github.com/Meseret1G/inventory-management-system/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	SKU               string          `json:"sku" validate:"required,max=50"`
	Name              string          `json:"name" validate:"required,max=255"`
	Description       string          `json:"description" validate:"omitempty"`
	Price             decimal.Decimal `json:"price" validate:"required"`
	Quantity          *int            `json:"quantity" validate:"omitempty,min=0"`
	CategoryID        uuid.UUID       `json:"category_id" validate:"required"`
	LowStockThreshold *int            `json:"low_stock_threshold" validate:"omitempty,min=0"`
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	SKU               *string          `json:"sku" validate:"omitempty,max=50"`
	Name              *string          `json:"name" validate:"omitempty,max=255"`
	Description       *string          `json:"description"`
	Price             *decimal.Decimal `json:"price"`
	CategoryID        *uuid.UUID       `json:"category_id"`
	LowStockThreshold *int             `json:"low_stock_threshold" validate:"omitempty,min=0"`
}

// ListProductsInput captures the supported listing filters.
type ListProductsInput struct {
	Query      string
	CategoryID *uuid.UUID
	Quantity   *int
	Ordering   string
}

// CategorySummaryDTO surfaces the owning category on product payloads.
type CategorySummaryDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ProductDTO is the public shape of a product.
type ProductDTO struct {
	ID                uuid.UUID           `json:"id"`
	SKU               string              `json:"sku"`
	Name              string              `json:"name"`
	Description       string              `json:"description"`
	Price             decimal.Decimal     `json:"price"`
	Quantity          int                 `json:"quantity"`
	LowStockThreshold int                 `json:"low_stock_threshold"`
	IsLowStock        bool                `json:"is_low_stock"`
	Category          *CategorySummaryDTO `json:"category,omitempty"`
	CategoryID        uuid.UUID           `json:"category_id"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// ProductListResult wraps a filtered product listing.
type ProductListResult struct {
	Count    int          `json:"count"`
	Products []ProductDTO `json:"products"`
}

// NewProductDTO builds a DTO from the persisted model. The low-stock flag is
// recomputed from the current quantity on every serialization.
func NewProductDTO(product *models.Product, category *models.Category) *ProductDTO {
	if product == nil {
		return nil
	}
	dto := &ProductDTO{
		ID:                product.ID,
		SKU:               product.SKU,
		Name:              product.Name,
		Description:       product.Description,
		Price:             product.Price,
		Quantity:          product.Quantity,
		LowStockThreshold: product.LowStockThreshold,
		IsLowStock:        product.IsLowStock(),
		CategoryID:        product.CategoryID,
		CreatedAt:         product.CreatedAt,
		UpdatedAt:         product.UpdatedAt,
	}
	if category != nil {
		dto.Category = &CategorySummaryDTO{ID: category.ID, Name: category.Name}
	}
	return dto
}
