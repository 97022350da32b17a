package stock

import (
	"time"

	product "github.com/Meseret1G/inventory-management-system/internal/products"
	"github.com/Meseret1G/inventory-management-system/pkg/db/models"
	"github.com/google/uuid"
)

// AdjustStockInput holds the validated payload for a stock adjustment.
// QuantityChange is a pointer so a zero adjustment is distinguishable from a
// missing field; zero is accepted and still writes an audit entry.
type AdjustStockInput struct {
	QuantityChange *int   `json:"quantity_change" validate:"required"`
	Reason         string `json:"reason" validate:"required,max=255"`
}

// MovementDTO is the public shape of one audit trail entry.
type MovementDTO struct {
	ID             uuid.UUID  `json:"id"`
	ProductID      uuid.UUID  `json:"product_id"`
	UserID         *uuid.UUID `json:"user_id,omitempty"`
	UserEmail      *string    `json:"user_email,omitempty"`
	QuantityChange int        `json:"quantity_change"`
	Reason         string     `json:"reason"`
	CreatedAt      time.Time  `json:"created_at"`
}

// MovementListResult wraps a product's movement history.
type MovementListResult struct {
	Count     int           `json:"count"`
	Movements []MovementDTO `json:"movements"`
}

// AdjustStockResult returns the updated product alongside the recorded movement.
type AdjustStockResult struct {
	Product  *product.ProductDTO `json:"product"`
	Movement *MovementDTO        `json:"movement"`
}

// NewMovementDTO maps the persisted model to its public shape.
func NewMovementDTO(movement *models.StockMovement) *MovementDTO {
	if movement == nil {
		return nil
	}
	dto := &MovementDTO{
		ID:             movement.ID,
		ProductID:      movement.ProductID,
		UserID:         movement.UserID,
		QuantityChange: movement.QuantityChange,
		Reason:         movement.Reason,
		CreatedAt:      movement.CreatedAt,
	}
	if movement.User != nil {
		email := movement.User.Email
		dto.UserEmail = &email
	}
	return dto
}
