package repositories

import (
	"context"

	"nodefit/internal/models"
)

// ProfileRepository defines the interface for profile data access.
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id uint) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	// Delete removes the profile and every record that references it.
	Delete(ctx context.Context, id uint) error
}
