package repositories

import (
	"context"

	"nodefit/internal/models"
)

// MealRepository defines the interface for meal data access.
type MealRepository interface {
	Create(ctx context.Context, meal *models.Meal) error
	// ListByOwner returns meals newest first; limit <= 0 means no limit.
	ListByOwner(ctx context.Context, ownerKey string, limit int) ([]models.Meal, error)
	CountByOwner(ctx context.Context, ownerKey string) (int64, error)
	// ReassignOwner moves every meal of from onto the profile owner to.
	ReassignOwner(ctx context.Context, from string, to models.MealOwner) (int64, error)
}
