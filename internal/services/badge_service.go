package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"nodefit/internal/models"
	"nodefit/internal/repositories"
	"nodefit/pkg/logger"
)

// Thresholds of the automatic badge rules.
const (
	FoodLoggerMeals = 10
	StreakWeek      = 7
	StreakMonth     = 30
)

// BadgeInfo is the catalog entry shown for a badge type.
type BadgeInfo struct {
	Type        models.BadgeType `json:"type"`
	Name        string           `json:"name"`
	Icon        string           `json:"icon"`
	Description string           `json:"description"`
}

var badgeCatalog = map[models.BadgeType]BadgeInfo{
	models.BadgeFirstScan:     {Name: "First Flame", Icon: "🔥", Description: "Complete first health scan"},
	models.BadgeStepMaster:    {Name: "Step Master", Icon: "🏃", Description: "10K steps in a day"},
	models.BadgeCleanEater:    {Name: "Clean Eater", Icon: "🥗", Description: "Log 7 healthy meals"},
	models.BadgeSleepChampion: {Name: "Sleep Champion", Icon: "😴", Description: "8h sleep for 5 days"},
	models.BadgeStreak7:       {Name: "7-Day Warrior", Icon: "📅", Description: "7-day streak"},
	models.BadgeStreak30:      {Name: "Monthly Master", Icon: "🗓️", Description: "30-day streak"},
	models.BadgeGoalCrusher:   {Name: "Goal Crusher", Icon: "🎯", Description: "Reach primary goal"},
	models.BadgeFoodLogger:    {Name: "Food Logger", Icon: "📸", Description: "Log 10 meals"},
	models.BadgeHydrationHero: {Name: "Hydration Hero", Icon: "💧", Description: "Track water 7 days"},
	models.BadgeEarlyBird:     {Name: "Early Bird", Icon: "🌅", Description: "Log before 7 AM"},
}

// BadgeCatalog returns the catalog entry of t.
func BadgeCatalog(t models.BadgeType) (BadgeInfo, bool) {
	info, ok := badgeCatalog[t]
	info.Type = t
	return info, ok
}

// BadgeGridItem is one cell of the badge grid.
type BadgeGridItem struct {
	BadgeInfo
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earned_at,omitempty"`
}

// BadgeService awards and lists achievements.
type BadgeService struct {
	repo   repositories.BadgeRepository
	events EventPublisher
	logger *zap.Logger
}

// NewBadgeService creates a new BadgeService.
func NewBadgeService(repo repositories.BadgeRepository, events EventPublisher, log *zap.Logger) *BadgeService {
	return &BadgeService{
		repo:   repo,
		events: publisherOrNop(events),
		logger: logger.OrNop(log),
	}
}

// Award grants badgeType to the profile. A badge already held yields
// ErrBadgeAlreadyHeld and leaves the store untouched.
func (s *BadgeService) Award(ctx context.Context, profileID uint, badgeType models.BadgeType) (*models.Badge, error) {
	if !badgeType.Valid() {
		return nil, fmt.Errorf("unknown badge type %q: %w", badgeType, ErrInvalidInput)
	}

	badge, created, err := s.repo.Award(ctx, profileID, badgeType)
	if err != nil {
		return nil, fmt.Errorf("failed to award badge: %w", err)
	}
	if !created {
		return nil, fmt.Errorf("%s for profile %d: %w", badgeType, profileID, ErrBadgeAlreadyHeld)
	}

	s.logger.Info("badge awarded", zap.Uint("profile_id", profileID), zap.String("badge", string(badgeType)))
	publish(ctx, s.events, s.logger, EventBadgeAwarded, badge)
	return badge, nil
}

// grant awards badgeType, treating an already held badge as success. The
// returned badge is nil when nothing new was earned.
func (s *BadgeService) grant(ctx context.Context, profileID uint, badgeType models.BadgeType) (*models.Badge, error) {
	badge, err := s.Award(ctx, profileID, badgeType)
	if errors.Is(err, ErrBadgeAlreadyHeld) {
		return nil, nil
	}
	return badge, err
}

// List returns the badges the profile holds.
func (s *BadgeService) List(ctx context.Context, profileID uint) ([]models.Badge, error) {
	return s.repo.ListByProfile(ctx, profileID)
}

// Grid returns every catalog badge in display order with its earned state.
func (s *BadgeService) Grid(ctx context.Context, profileID uint) ([]BadgeGridItem, error) {
	held, err := s.repo.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	earned := make(map[models.BadgeType]time.Time, len(held))
	for _, b := range held {
		earned[b.BadgeType] = b.EarnedAt
	}

	grid := make([]BadgeGridItem, 0, len(models.BadgeTypes))
	for _, t := range models.BadgeTypes {
		info, _ := BadgeCatalog(t)
		item := BadgeGridItem{BadgeInfo: info}
		if at, ok := earned[t]; ok {
			item.Earned = true
			item.EarnedAt = &at
		}
		grid = append(grid, item)
	}
	return grid, nil
}

// CheckStreak awards the streak badges reached by current.
func (s *BadgeService) CheckStreak(ctx context.Context, profileID uint, current int) ([]models.Badge, error) {
	var awarded []models.Badge
	rules := []struct {
		min   int
		badge models.BadgeType
	}{
		{StreakWeek, models.BadgeStreak7},
		{StreakMonth, models.BadgeStreak30},
	}
	for _, rule := range rules {
		if current < rule.min {
			continue
		}
		b, err := s.grant(ctx, profileID, rule.badge)
		if err != nil {
			return awarded, err
		}
		if b != nil {
			awarded = append(awarded, *b)
		}
	}
	return awarded, nil
}

// CheckMealCount awards food_logger once the profile has logged enough meals.
func (s *BadgeService) CheckMealCount(ctx context.Context, profileID uint, meals int64) (*models.Badge, error) {
	if meals < FoodLoggerMeals {
		return nil, nil
	}
	return s.grant(ctx, profileID, models.BadgeFoodLogger)
}

// FirstScan awards first_scan after a successful health scan.
func (s *BadgeService) FirstScan(ctx context.Context, profileID uint) (*models.Badge, error) {
	return s.grant(ctx, profileID, models.BadgeFirstScan)
}
