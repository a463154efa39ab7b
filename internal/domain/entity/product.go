package entity

import (
	"encoding/json"
	"time"
)

// Product represents a product in the store catalog
type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Price     int64     `gorm:"default:0" json:"-"` // Stored in cents
	Stock     int       `gorm:"default:0" json:"stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// GetPriceDecimal returns the unit price as a decimal (for display)
func (p *Product) GetPriceDecimal() float64 {
	return float64(p.Price) / 100
}

// SetPriceFromDecimal sets the unit price from a decimal value
func (p *Product) SetPriceFromDecimal(price float64) {
	p.Price = int64(price * 100)
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(p),
		Price: p.GetPriceDecimal(),
	})
}
