package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdempotencyKey stores processed requests to prevent duplicate bills
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key          string    `gorm:"uniqueIndex;size:255;not null"` // The idempotency key from client
	Endpoint     string    `gorm:"size:255;not null"`             // API endpoint (e.g., "POST /bills/process")
	ResponseCode int       `gorm:"not null"`                      // HTTP status code of original response
	ResponseBody string    `gorm:"type:text"`                     // JSON response body (cached)
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

// BeforeCreate generates a UUID before creating a new key
func (i *IdempotencyKey) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
