package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"nodefit/internal/models"
)

// GORMCycleRepository is a GORM implementation of CycleRepository.
type GORMCycleRepository struct {
	db *gorm.DB
}

// NewGORMCycleRepository creates a new instance of GORMCycleRepository.
func NewGORMCycleRepository(db *gorm.DB) *GORMCycleRepository {
	return &GORMCycleRepository{db: db}
}

func (r *GORMCycleRepository) Create(ctx context.Context, cycle *models.Cycle) error {
	if err := r.db.WithContext(ctx).Create(cycle).Error; err != nil {
		return fmt.Errorf("failed to log cycle: %w", err)
	}
	return nil
}

func (r *GORMCycleRepository) ListByProfile(ctx context.Context, profileID uint) ([]models.Cycle, error) {
	var cycles []models.Cycle
	err := r.db.WithContext(ctx).Where("profile_id = ?", profileID).
		Order("start_date desc, id desc").Find(&cycles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cycles of profile %d: %w", profileID, err)
	}
	return cycles, nil
}

func (r *GORMCycleRepository) GetByID(ctx context.Context, id uint) (*models.Cycle, error) {
	var cycle models.Cycle
	if err := r.db.WithContext(ctx).First(&cycle, id).Error; err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("cycle with ID %d %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cycle by ID %d: %w", id, err)
	}
	return &cycle, nil
}

func (r *GORMCycleRepository) Update(ctx context.Context, id uint, patch models.CyclePatch) (*models.Cycle, error) {
	updates := map[string]interface{}{}
	if patch.StartDate != nil {
		updates["start_date"] = *patch.StartDate
	}
	if patch.EndDate != nil {
		updates["end_date"] = *patch.EndDate
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}
	if len(updates) == 0 {
		return r.GetByID(ctx, id)
	}

	res := r.db.WithContext(ctx).Model(&models.Cycle{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update cycle %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("cycle with ID %d %w for update", id, ErrNotFound)
	}
	return r.GetByID(ctx, id)
}
