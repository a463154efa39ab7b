package entity

import (
	"encoding/json"
	"time"

	"github.com/billdesk/billdesk-api/internal/domain/enum"
)

// Bill represents a customer bill drafted from selected product lines.
// A bill is created in Pending state with no payment method and is settled
// exactly once, which is also the only point where product stock moves.
type Bill struct {
	ID            uint               `gorm:"primaryKey" json:"id"`
	CustomerID    uint               `gorm:"not null;index" json:"customer_id"`
	Date          time.Time          `gorm:"not null" json:"date"`
	Total         int64              `gorm:"default:0" json:"-"` // Stored in cents
	PaymentMethod enum.PaymentMethod `gorm:"size:50" json:"payment_method"`
	PaymentStatus enum.PaymentStatus `gorm:"default:0" json:"payment_status"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`

	// Relationships
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []BillItem `gorm:"foreignKey:BillID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (b Bill) MarshalJSON() ([]byte, error) {
	type Alias Bill
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(b),
		Total: float64(b.Total) / 100,
	})
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// IsPaid reports whether the bill has been settled
func (b *Bill) IsPaid() bool {
	return b.PaymentStatus == enum.PaymentStatusPaid
}

// GetTotalDecimal returns the bill total as a decimal
func (b *Bill) GetTotalDecimal() float64 {
	return float64(b.Total) / 100
}

// BillItem is one product line on a bill. Price is the unit price captured
// at draft time; later catalog price changes do not affect existing bills.
type BillItem struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	BillID    uint  `gorm:"not null;index" json:"bill_id"`
	ProductID uint  `gorm:"not null;index" json:"product_id"`
	Quantity  int   `gorm:"not null" json:"quantity"`
	Price     int64 `gorm:"not null" json:"-"` // Unit price in cents, snapshotted at draft time

	// Relationships
	Bill    Bill    `gorm:"foreignKey:BillID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// Subtotal returns quantity x snapshotted unit price, in cents
func (bi *BillItem) Subtotal() int64 {
	return bi.Price * int64(bi.Quantity)
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (bi BillItem) MarshalJSON() ([]byte, error) {
	type Alias BillItem
	return json.Marshal(&struct {
		Alias
		Price    float64 `json:"price"`
		Subtotal float64 `json:"subtotal"`
	}{
		Alias:    Alias(bi),
		Price:    float64(bi.Price) / 100,
		Subtotal: float64(bi.Subtotal()) / 100,
	})
}

// TableName returns the table name for the BillItem model
func (BillItem) TableName() string {
	return "bill_items"
}
