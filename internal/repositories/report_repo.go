package repositories

import (
	"context"

	"nodefit/internal/models"
)

// ReportRepository defines the interface for health report data access.
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	ListByProfile(ctx context.Context, profileID uint) ([]models.Report, error)
	Latest(ctx context.Context, profileID uint) (*models.Report, error)
}
