package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"nodefit/internal/models"
	"nodefit/internal/repositories"
	"nodefit/pkg/logger"
)

// CycleService records cycles and derives predictions from them.
type CycleService struct {
	repo   repositories.CycleRepository
	now    Clock
	logger *zap.Logger
}

// NewCycleService creates a new CycleService.
func NewCycleService(repo repositories.CycleRepository, log *zap.Logger) *CycleService {
	return &CycleService{repo: repo, now: time.Now, logger: logger.OrNop(log)}
}

// WithClock replaces the time source.
func (s *CycleService) WithClock(now Clock) *CycleService {
	s.now = now
	return s
}

func checkCycleDates(start time.Time, end *time.Time) error {
	if start.IsZero() {
		return fmt.Errorf("start date is required: %w", ErrInvalidInput)
	}
	if end != nil && civilDay(*end).Before(civilDay(start)) {
		return fmt.Errorf("end date is before start date: %w", ErrInvalidInput)
	}
	return nil
}

// Log records a new cycle. Dates are truncated to calendar days.
func (s *CycleService) Log(ctx context.Context, profileID uint, start time.Time, end *time.Time, notes string) (*models.Cycle, error) {
	if err := checkCycleDates(start, end); err != nil {
		return nil, err
	}
	cycle := &models.Cycle{ProfileID: profileID, StartDate: civilDay(start), Notes: notes}
	if end != nil {
		d := civilDay(*end)
		cycle.EndDate = &d
	}
	if err := s.repo.Create(ctx, cycle); err != nil {
		return nil, fmt.Errorf("failed to log cycle: %w", err)
	}
	return cycle, nil
}

// List returns the profile's cycles, most recent start first.
func (s *CycleService) List(ctx context.Context, profileID uint) ([]models.Cycle, error) {
	return s.repo.ListByProfile(ctx, profileID)
}

// Update applies patch to a cycle owned by profileID.
func (s *CycleService) Update(ctx context.Context, profileID, cycleID uint, patch models.CyclePatch) (*models.Cycle, error) {
	cycle, err := s.repo.GetByID(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	if cycle.ProfileID != profileID {
		return nil, fmt.Errorf("cycle %d: %w", cycleID, ErrPermissionDenied)
	}

	start := cycle.StartDate
	if patch.StartDate != nil {
		d := civilDay(*patch.StartDate)
		patch.StartDate = &d
		start = d
	}
	end := cycle.EndDate
	if patch.EndDate != nil {
		d := civilDay(*patch.EndDate)
		patch.EndDate = &d
		end = &d
	}
	if err := checkCycleDates(start, end); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, cycleID, patch)
}

// End marks a cycle as ended today.
func (s *CycleService) End(ctx context.Context, profileID, cycleID uint) (*models.Cycle, error) {
	today := s.now()
	return s.Update(ctx, profileID, cycleID, models.CyclePatch{EndDate: &today})
}

// Predict returns the current phase and next predicted start.
func (s *CycleService) Predict(ctx context.Context, profileID uint) (CyclePrediction, error) {
	cycles, err := s.repo.ListByProfile(ctx, profileID)
	if err != nil {
		return CyclePrediction{}, err
	}
	return PredictCycle(cycles, s.now()), nil
}
