package entity

import (
	"time"
)

// Customer represents a store customer
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Phone     *string   `gorm:"size:50" json:"phone,omitempty"`
	Email     *string   `gorm:"size:255" json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Bills []Bill `gorm:"foreignKey:CustomerID" json:"-"`
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
