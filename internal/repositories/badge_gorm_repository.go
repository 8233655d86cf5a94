package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"nodefit/internal/models"
)

// GORMBadgeRepository is a GORM implementation of BadgeRepository.
type GORMBadgeRepository struct {
	db *gorm.DB
}

// NewGORMBadgeRepository creates a new instance of GORMBadgeRepository.
func NewGORMBadgeRepository(db *gorm.DB) *GORMBadgeRepository {
	return &GORMBadgeRepository{db: db}
}

func (r *GORMBadgeRepository) Award(ctx context.Context, profileID uint, badgeType models.BadgeType) (*models.Badge, bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Badge{}).
		Where("profile_id = ? AND badge_type = ?", profileID, badgeType).
		Count(&count).Error
	if err != nil {
		return nil, false, fmt.Errorf("failed to check badge %s of profile %d: %w", badgeType, profileID, err)
	}
	if count > 0 {
		return nil, false, nil
	}

	badge := &models.Badge{
		ProfileID: profileID,
		BadgeType: badgeType,
		EarnedAt:  time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(badge).Error; err != nil {
		// Lost a race against a concurrent award of the same badge.
		if isDuplicate(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to award badge %s to profile %d: %w", badgeType, profileID, err)
	}
	return badge, true, nil
}

func (r *GORMBadgeRepository) ListByProfile(ctx context.Context, profileID uint) ([]models.Badge, error) {
	var badges []models.Badge
	if err := r.db.WithContext(ctx).Where("profile_id = ?", profileID).Order("earned_at asc, id asc").Find(&badges).Error; err != nil {
		return nil, fmt.Errorf("failed to list badges of profile %d: %w", profileID, err)
	}
	return badges, nil
}
