package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyKey stores a processed request so a retried save does not
// append the order twice
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key          string    `gorm:"uniqueIndex:idx_idem_key_endpoint;size:255;not null"`
	Endpoint     string    `gorm:"uniqueIndex:idx_idem_key_endpoint;size:255;not null"` // e.g. "POST /api/v1/draft/save"
	RequestHash  string    `gorm:"size:64"`
	ResponseCode int       `gorm:"not null"`
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}
