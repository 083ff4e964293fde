package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a sellable item and its current stock
type Product struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Title          string          `gorm:"not null" json:"title"`
	Description    *string         `json:"description"`
	UnitsAvailable int             `gorm:"not null;default:0;check:units_available >= 0" json:"units_available"` // denormalized stock, maintained by order lines
	UnitPrice      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Hidden         bool            `gorm:"not null;default:false" json:"hidden"`
	OrderProducts  []OrderProduct  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt      time.Time       `json:"-"`
	UpdatedAt      time.Time       `json:"-"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}
