package stock

import (
	"context"

	"github.com/Meseret1G/inventory-management-system/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository wires stock movement persistence helpers. Movements are insert
// only; nothing here updates or deletes a movement row.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindProduct loads the product row.
func (r *Repository) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ApplyQuantityChange adds the signed change to the product's quantity with a
// guard that keeps the result non-negative. Returns false when no row changed,
// meaning the product is missing or the adjustment would go below zero.
func (r *Repository) ApplyQuantityChange(ctx context.Context, id uuid.UUID, change int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND quantity + ? >= 0", id, change).
		Update("quantity", gorm.Expr("quantity + ?", change))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CreateMovement appends one audit trail entry.
func (r *Repository) CreateMovement(ctx context.Context, movement *models.StockMovement) (*models.StockMovement, error) {
	if err := r.db.WithContext(ctx).Create(movement).Error; err != nil {
		return nil, err
	}
	return movement, nil
}

// ListByProduct returns the product's movements, newest first, with the
// acting user preloaded where one is still referenced.
func (r *Repository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.StockMovement, error) {
	var movements []models.StockMovement
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&movements).
		Error; err != nil {
		return nil, err
	}
	return movements, nil
}
