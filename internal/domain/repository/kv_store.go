package repository

import (
	"context"
)

// KVStore is the durable string-keyed document store of the till
type KVStore interface {
	// Get returns the value for key; ok is false when the key was never written
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
