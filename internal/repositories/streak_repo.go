package repositories

import (
	"context"

	"nodefit/internal/models"
)

// StreakRepository defines the interface for streak data access.
type StreakRepository interface {
	// GetOrCreate returns the profile's streak, creating an empty one on first access.
	GetOrCreate(ctx context.Context, profileID uint) (*models.Streak, error)
	Save(ctx context.Context, streak *models.Streak) error
}
