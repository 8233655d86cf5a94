package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"nodefit/internal/models"
)

// dependents lists every collection keyed by profile_id, in delete order.
var dependents = []struct {
	name  string
	model interface{}
}{
	{"reports", &models.Report{}},
	{"streaks", &models.Streak{}},
	{"badges", &models.Badge{}},
	{"meals", &models.Meal{}},
	{"cycles", &models.Cycle{}},
	{"tasks", &models.Task{}},
}

// GORMProfileRepository is a GORM implementation of ProfileRepository.
type GORMProfileRepository struct {
	db *gorm.DB
}

// NewGORMProfileRepository creates a new instance of GORMProfileRepository.
func NewGORMProfileRepository(db *gorm.DB) *GORMProfileRepository {
	return &GORMProfileRepository{
		db: db,
	}
}

// Create inserts a new profile.
func (r *GORMProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if profile.SchemaVersion == 0 {
		profile.SchemaVersion = models.ProfileSchemaVersion
	}
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetByID retrieves a single profile by its ID.
func (r *GORMProfileRepository) GetByID(ctx context.Context, id uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("profile with ID %d %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile by ID %d: %w", id, err)
	}
	return &profile, nil
}

// GetByUserID returns the oldest profile of the user. Nothing prevents a
// user from owning several profiles; callers only ever see the first one.
func (r *GORMProfileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id asc").First(&profile).Error; err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("profile for user %d %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile for user %d: %w", userID, err)
	}
	return &profile, nil
}

// Update saves every attribute of the profile except ownership, schema
// version and creation time.
func (r *GORMProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	res := r.db.WithContext(ctx).Model(profile).Select("*").Omit("id", "user_id", "schema_version", "created_at").Updates(profile)
	if res.Error != nil {
		return fmt.Errorf("failed to update profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("profile with ID %d %w for update", profile.ID, ErrNotFound)
	}
	return nil
}

// Delete cascades across all dependent collections inside one transaction;
// a failure anywhere rolls back the whole delete.
func (r *GORMProfileRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dep := range dependents {
			if err := tx.Where("profile_id = ?", id).Delete(dep.model).Error; err != nil {
				return fmt.Errorf("failed to delete %s of profile %d: %w", dep.name, id, err)
			}
		}
		res := tx.Delete(&models.Profile{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete profile %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("profile with ID %d %w for deletion", id, ErrNotFound)
		}
		return nil
	})
}
