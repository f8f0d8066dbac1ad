package entity

import (
	"time"
)

// KVEntry is one durable string-keyed document of the till
type KVEntry struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the KVEntry model
func (KVEntry) TableName() string {
	return "kv_entries"
}
