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

// civilDay drops the time of day, keeping the calendar date of t in its own
// location.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the number of calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(civilDay(b).Sub(civilDay(a)).Hours() / 24)
}

// AdvanceStreak applies one day of activity at now to s. Calendar dates are
// taken in now's location. changed is false when s was already active today.
func AdvanceStreak(s models.Streak, now time.Time) (models.Streak, bool) {
	if s.LastActive != nil {
		switch daysBetween(s.LastActive.In(now.Location()), now) {
		case 0:
			return s, false
		case 1:
			s.Current++
		default:
			s.Current = 1
		}
	} else {
		s.Current = 1
	}

	if s.Current > s.Longest {
		s.Longest = s.Current
	}
	active := now
	s.LastActive = &active
	return s, true
}

// StreakService tracks daily engagement per profile.
type StreakService struct {
	repo   repositories.StreakRepository
	badges *BadgeService
	now    Clock
	logger *zap.Logger
}

// NewStreakService creates a new StreakService. badges may be nil, in which
// case no streak badges are awarded.
func NewStreakService(repo repositories.StreakRepository, badges *BadgeService, log *zap.Logger) *StreakService {
	return &StreakService{
		repo:   repo,
		badges: badges,
		now:    time.Now,
		logger: logger.OrNop(log),
	}
}

// WithClock replaces the time source.
func (s *StreakService) WithClock(now Clock) *StreakService {
	s.now = now
	return s
}

// Get returns the profile's streak, creating an empty one on first access.
func (s *StreakService) Get(ctx context.Context, profileID uint) (*models.Streak, error) {
	return s.repo.GetOrCreate(ctx, profileID)
}

// Advance records activity for today and awards any streak badge reached.
func (s *StreakService) Advance(ctx context.Context, profileID uint) (*models.Streak, error) {
	current, err := s.repo.GetOrCreate(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load streak: %w", err)
	}

	next, changed := AdvanceStreak(*current, s.now())
	if changed {
		if err := s.repo.Save(ctx, &next); err != nil {
			return nil, fmt.Errorf("failed to save streak: %w", err)
		}
		s.logger.Debug("streak advanced",
			zap.Uint("profile_id", profileID),
			zap.Int("current", next.Current),
			zap.Int("longest", next.Longest))
	}

	if s.badges != nil {
		if _, err := s.badges.CheckStreak(ctx, profileID, next.Current); err != nil {
			return nil, err
		}
	}
	return &next, nil
}
