package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"nodefit/internal/models"
)

// GORMMealRepository is a GORM implementation of MealRepository.
type GORMMealRepository struct {
	db *gorm.DB
}

// NewGORMMealRepository creates a new instance of GORMMealRepository.
func NewGORMMealRepository(db *gorm.DB) *GORMMealRepository {
	return &GORMMealRepository{db: db}
}

func (r *GORMMealRepository) Create(ctx context.Context, meal *models.Meal) error {
	if err := r.db.WithContext(ctx).Create(meal).Error; err != nil {
		return fmt.Errorf("failed to log meal: %w", err)
	}
	return nil
}

func (r *GORMMealRepository) ListByOwner(ctx context.Context, ownerKey string, limit int) ([]models.Meal, error) {
	q := r.db.WithContext(ctx).Where("owner_key = ?", ownerKey).Order("id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var meals []models.Meal
	if err := q.Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("failed to list meals of %s: %w", ownerKey, err)
	}
	return meals, nil
}

func (r *GORMMealRepository) CountByOwner(ctx context.Context, ownerKey string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Meal{}).Where("owner_key = ?", ownerKey).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count meals of %s: %w", ownerKey, err)
	}
	return count, nil
}

func (r *GORMMealRepository) ReassignOwner(ctx context.Context, from string, to models.MealOwner) (int64, error) {
	updates := map[string]interface{}{"owner_key": to.Key()}
	if to.ProfileID != 0 {
		updates["profile_id"] = to.ProfileID
	}
	res := r.db.WithContext(ctx).Model(&models.Meal{}).Where("owner_key = ?", from).Updates(updates)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to reassign meals of %s: %w", from, res.Error)
	}
	return res.RowsAffected, nil
}
