package repositories

import (
	"context"

	"nodefit/internal/models"
)

// BadgeRepository defines the interface for badge data access.
type BadgeRepository interface {
	// Award inserts the badge unless the profile already holds it. created
	// is false, with a nil badge, when it was already held.
	Award(ctx context.Context, profileID uint, badgeType models.BadgeType) (badge *models.Badge, created bool, err error)
	ListByProfile(ctx context.Context, profileID uint) ([]models.Badge, error)
}
