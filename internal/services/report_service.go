package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"nodefit/internal/models"
	"nodefit/internal/repositories"
	"nodefit/pkg/logger"
)

// ReportService stores health reports and runs health scans.
type ReportService struct {
	repo     repositories.ReportRepository
	insights *InsightService
	badges   *BadgeService
	events   EventPublisher
	logger   *zap.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(repo repositories.ReportRepository, insights *InsightService, badges *BadgeService, events EventPublisher, log *zap.Logger) *ReportService {
	return &ReportService{
		repo:     repo,
		insights: insights,
		badges:   badges,
		events:   publisherOrNop(events),
		logger:   logger.OrNop(log),
	}
}

// Save appends a report for profileID.
func (s *ReportService) Save(ctx context.Context, profileID uint, content models.HealthReport) (*models.Report, error) {
	report := &models.Report{ProfileID: profileID, Content: content}
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	publish(ctx, s.events, s.logger, EventReportSaved, map[string]interface{}{
		"profile_id": profileID,
		"report_id":  report.ID,
	})
	return report, nil
}

// List returns every report of the profile, newest first.
func (s *ReportService) List(ctx context.Context, profileID uint) ([]models.Report, error) {
	return s.repo.ListByProfile(ctx, profileID)
}

// Latest returns the newest report of the profile.
func (s *ReportService) Latest(ctx context.Context, profileID uint) (*models.Report, error) {
	return s.repo.Latest(ctx, profileID)
}

// Scan generates a health report for profile, stores it and awards
// first_scan. Nothing is stored when generation fails.
func (s *ReportService) Scan(ctx context.Context, profile *models.Profile, scan ScanInput, env *EnvironmentSnapshot) (*models.Report, error) {
	content, err := s.insights.HealthReport(ctx, profile, scan, env)
	if err != nil {
		return nil, err
	}
	report, err := s.Save(ctx, profile.ID, *content)
	if err != nil {
		return nil, err
	}
	if s.badges != nil {
		if _, err := s.badges.FirstScan(ctx, profile.ID); err != nil {
			s.logger.Warn("failed to award first scan badge", zap.Uint("profile_id", profile.ID), zap.Error(err))
		}
	}
	return report, nil
}
