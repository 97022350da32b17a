package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockMovement is one signed change to a product's stock. Rows are written
// once and never updated or deleted; the user reference is cleared (not the
// row removed) when the acting user is deleted.
type StockMovement struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	ProductID      uuid.UUID  `gorm:"column:product_id;type:uuid;not null;index"`
	UserID         *uuid.UUID `gorm:"column:user_id;type:uuid"`
	User           *User      `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	QuantityChange int        `gorm:"column:quantity_change;not null"`
	Reason         string     `gorm:"column:reason;size:255;not null"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (m *StockMovement) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
