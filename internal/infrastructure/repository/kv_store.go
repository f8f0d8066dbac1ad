package repository

import (
	"context"
	"errors"

	"github.com/chaatgpt/till/internal/domain/entity"
	"github.com/chaatgpt/till/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type kvStore struct {
	db *gorm.DB
}

// NewKVStore creates a key-value store backed by the kv_entries table
func NewKVStore(db *gorm.DB) repository.KVStore {
	return &kvStore{db: db}
}

// Get retrieves the value stored under key
func (s *kvStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry entity.KVEntry
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return entry.Value, true, nil
}

// Set writes value under key, replacing any previous value
func (s *kvStore) Set(ctx context.Context, key, value string) error {
	entry := entity.KVEntry{Key: key, Value: value}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}
