package models

import (
	"time"
)

// Order groups the order lines placed by a customer. Payment and shipment
// details are expected to live here once they exist.
type Order struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CustomerID    uint           `gorm:"not null;index" json:"customer_id"` // foreign key to customers table
	OrderProducts []OrderProduct `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_products"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
