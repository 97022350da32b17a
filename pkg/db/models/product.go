package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a stocked item identified by its SKU.
type Product struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	SKU               string          `gorm:"column:sku;size:50;not null;uniqueIndex:idx_products_sku"`
	Name              string          `gorm:"column:name;size:255;not null"`
	Description       string          `gorm:"column:description"`
	Price             decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Quantity          int             `gorm:"column:quantity;not null;default:0"`
	CategoryID        uuid.UUID       `gorm:"column:category_id;type:uuid;not null;index"`
	LowStockThreshold int             `gorm:"column:low_stock_threshold;not null;default:10"`
	Movements         []StockMovement `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// IsLowStock reports whether the product needs reordering.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.LowStockThreshold
}
