package repository

import (
	"context"
	"errors"
	"time"

	"github.com/chaatgpt/till/internal/domain/entity"
	domainRepo "github.com/chaatgpt/till/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository creates a new idempotency repository
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key string) (*entity.IdempotencyKey, error) {
	var ikey entity.IdempotencyKey
	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&ikey).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ikey, err
}

// Create stores a key, replacing an expired row with the same key
func (r *idempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"endpoint", "response_code", "response_body", "expires_at"}),
		}).
		Create(ikey).Error
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&entity.IdempotencyKey{}).Error
}
