package repositories

import (
	"context"

	"nodefit/internal/models"
)

// CycleRepository defines the interface for cycle data access.
type CycleRepository interface {
	Create(ctx context.Context, cycle *models.Cycle) error
	// ListByProfile returns cycles with the most recent start date first.
	ListByProfile(ctx context.Context, profileID uint) ([]models.Cycle, error)
	GetByID(ctx context.Context, id uint) (*models.Cycle, error)
	Update(ctx context.Context, id uint, patch models.CyclePatch) (*models.Cycle, error)
}
