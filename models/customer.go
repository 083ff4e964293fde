package models

import (
	"time"
)

// Customer represents a buyer who places orders
type Customer struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"not null" json:"email"`
	Name           string    `gorm:"not null" json:"name"`
	DocumentNumber int64     `gorm:"not null;uniqueIndex" json:"document_number"`
	PhoneNumber    int64     `gorm:"not null" json:"phone_number"`
	Address        string    `gorm:"not null" json:"address"`
	Orders         []Order   `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT" json:"-"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
