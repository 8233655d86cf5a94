package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"nodefit/internal/models"
)

// GORMStreakRepository is a GORM implementation of StreakRepository.
type GORMStreakRepository struct {
	db *gorm.DB
}

// NewGORMStreakRepository creates a new instance of GORMStreakRepository.
func NewGORMStreakRepository(db *gorm.DB) *GORMStreakRepository {
	return &GORMStreakRepository{db: db}
}

func (r *GORMStreakRepository) GetOrCreate(ctx context.Context, profileID uint) (*models.Streak, error) {
	streak := models.Streak{ProfileID: profileID}
	if err := r.db.WithContext(ctx).Where("profile_id = ?", profileID).FirstOrCreate(&streak).Error; err != nil {
		return nil, fmt.Errorf("failed to load streak of profile %d: %w", profileID, err)
	}
	return &streak, nil
}

func (r *GORMStreakRepository) Save(ctx context.Context, streak *models.Streak) error {
	res := r.db.WithContext(ctx).Model(&models.Streak{}).Where("id = ?", streak.ID).Updates(map[string]interface{}{
		"current":     streak.Current,
		"longest":     streak.Longest,
		"last_active": streak.LastActive,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to save streak: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("streak with ID %d %w for update", streak.ID, ErrNotFound)
	}
	return nil
}
