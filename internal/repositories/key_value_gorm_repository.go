package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nodefit/internal/models"
)

// GORMKeyValueRepository is a GORM implementation of KeyValueRepository.
type GORMKeyValueRepository struct {
	db *gorm.DB
}

// NewGORMKeyValueRepository creates a new instance of GORMKeyValueRepository.
func NewGORMKeyValueRepository(db *gorm.DB) *GORMKeyValueRepository {
	return &GORMKeyValueRepository{db: db}
}

func (r *GORMKeyValueRepository) Get(ctx context.Context, key string) (json.RawMessage, error) {
	var kv models.KeyValue
	if err := r.db.WithContext(ctx).First(&kv, "key = ?", key).Error; err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("key %s %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return json.RawMessage(kv.Value), nil
}

func (r *GORMKeyValueRepository) Put(ctx context.Context, key string, value json.RawMessage) error {
	kv := models.KeyValue{Key: key, Value: datatypes.JSON(value), UpdatedAt: time.Now()}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// Delete is a no-op for a missing key.
func (r *GORMKeyValueRepository) Delete(ctx context.Context, key string) error {
	if err := r.db.WithContext(ctx).Delete(&models.KeyValue{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}
