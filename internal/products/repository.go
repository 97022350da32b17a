package product

import (
	"context"
	"strings"

	"github.com/Meseret1G/inventory-management-system/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var orderings = map[string]string{
	"price":     "price ASC",
	"-price":    "price DESC",
	"quantity":  "quantity ASC",
	"-quantity": "quantity DESC",
}

// OrderingValid reports whether the listing supports the ordering key.
func OrderingValid(ordering string) bool {
	if ordering == "" {
		return true
	}
	_, ok := orderings[ordering]
	return ok
}

// Repository wires product persistence helpers.
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

// Create persists a new product.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Save writes all product fields back to the row.
func (r *Repository) Save(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes the product. Movements cascade at the database level.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns products matching the provided filters, joined with their
// category names, ordered per input (name ASC when no ordering is given).
func (r *Repository) List(ctx context.Context, input ListProductsInput) ([]models.Product, map[uuid.UUID]string, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if q := strings.TrimSpace(input.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern)
	}
	if input.CategoryID != nil {
		query = query.Where("category_id = ?", *input.CategoryID)
	}
	if input.Quantity != nil {
		query = query.Where("quantity = ?", *input.Quantity)
	}

	orderBy := "name ASC"
	if clause, ok := orderings[input.Ordering]; ok {
		orderBy = clause
	}

	var products []models.Product
	if err := query.Order(orderBy).Find(&products).Error; err != nil {
		return nil, nil, err
	}

	names, err := r.categoryNames(ctx, products)
	if err != nil {
		return nil, nil, err
	}
	return products, names, nil
}

// ListLowStock returns products whose quantity is at or below their threshold.
func (r *Repository) ListLowStock(ctx context.Context) ([]models.Product, map[uuid.UUID]string, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Where("quantity <= low_stock_threshold").
		Order("quantity ASC").
		Find(&products).
		Error; err != nil {
		return nil, nil, err
	}

	names, err := r.categoryNames(ctx, products)
	if err != nil {
		return nil, nil, err
	}
	return products, names, nil
}

func (r *Repository) categoryNames(ctx context.Context, products []models.Product) (map[uuid.UUID]string, error) {
	if len(products) == 0 {
		return map[uuid.UUID]string{}, nil
	}

	seen := map[uuid.UUID]struct{}{}
	ids := make([]uuid.UUID, 0, len(products))
	for i := range products {
		id := products[i].CategoryID
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	var categories []models.Category
	if err := r.db.WithContext(ctx).Find(&categories, "id IN ?", ids).Error; err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(categories))
	for i := range categories {
		names[categories[i].ID] = categories[i].Name
	}
	return names, nil
}
