package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"nodefit/internal/models"
)

// GORMReportRepository is a GORM implementation of ReportRepository.
type GORMReportRepository struct {
	db *gorm.DB
}

// NewGORMReportRepository creates a new instance of GORMReportRepository.
func NewGORMReportRepository(db *gorm.DB) *GORMReportRepository {
	return &GORMReportRepository{db: db}
}

// Create appends a report.
func (r *GORMReportRepository) Create(ctx context.Context, report *models.Report) error {
	if report.SchemaVersion == 0 {
		report.SchemaVersion = models.ReportSchemaVersion
	}
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// ListByProfile returns every report of the profile, newest first.
func (r *GORMReportRepository) ListByProfile(ctx context.Context, profileID uint) ([]models.Report, error) {
	var reports []models.Report
	if err := r.db.WithContext(ctx).Where("profile_id = ?", profileID).Order("id desc").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to list reports of profile %d: %w", profileID, err)
	}
	return reports, nil
}

// Latest returns the most recently inserted report.
func (r *GORMReportRepository) Latest(ctx context.Context, profileID uint) (*models.Report, error) {
	var report models.Report
	if err := r.db.WithContext(ctx).Where("profile_id = ?", profileID).Order("id desc").First(&report).Error; err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("report for profile %d %w", profileID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get latest report of profile %d: %w", profileID, err)
	}
	return &report, nil
}
