package entity

import (
	"time"
)

// IdempotencyKey stores processed requests to prevent duplicates
type IdempotencyKey struct {
	ID           uint      `gorm:"primaryKey"`
	Key          string    `gorm:"size:255;not null;index:idx_idempotency_key_endpoint,unique"` // The idempotency key from client
	Endpoint     string    `gorm:"size:255;not null;index:idx_idempotency_key_endpoint,unique"` // API endpoint (e.g., "POST /bills")
	ResponseCode int       `gorm:"not null"`                                                    // HTTP status code of original response
	ResponseBody string    `gorm:"type:text"`                                                   // JSON response body (cached)
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"` // Keys expire after 24 hours
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}
