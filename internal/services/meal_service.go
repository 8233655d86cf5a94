package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"nodefit/internal/models"
	"nodefit/internal/repositories"
	"nodefit/pkg/logger"
)

// RecentMeals is the default size of the recent meal list.
const RecentMeals = 20

// MealService logs and lists meals for profiles and temporary owners.
type MealService struct {
	repo     repositories.MealRepository
	insights *InsightService
	badges   *BadgeService
	events   EventPublisher
	logger   *zap.Logger
}

// NewMealService creates a new MealService.
func NewMealService(repo repositories.MealRepository, insights *InsightService, badges *BadgeService, events EventPublisher, log *zap.Logger) *MealService {
	return &MealService{
		repo:     repo,
		insights: insights,
		badges:   badges,
		events:   publisherOrNop(events),
		logger:   logger.OrNop(log),
	}
}

// Log appends meal for owner and applies the food_logger rule to profiles.
func (s *MealService) Log(ctx context.Context, owner models.MealOwner, meal *models.Meal) error {
	meal.OwnerKey = owner.Key()
	meal.ProfileID = nil
	if owner.ProfileID != 0 {
		pid := owner.ProfileID
		meal.ProfileID = &pid
	}
	if err := s.repo.Create(ctx, meal); err != nil {
		return fmt.Errorf("failed to log meal: %w", err)
	}
	publish(ctx, s.events, s.logger, EventMealLogged, map[string]interface{}{
		"meal_id":   meal.ID,
		"owner_key": meal.OwnerKey,
		"calories":  meal.Calories,
	})

	if owner.ProfileID == 0 || s.badges == nil {
		return nil
	}
	count, err := s.repo.CountByOwner(ctx, meal.OwnerKey)
	if err != nil {
		return fmt.Errorf("failed to count meals: %w", err)
	}
	if _, err := s.badges.CheckMealCount(ctx, owner.ProfileID, count); err != nil {
		return err
	}
	return nil
}

// Analyze sends a food photo for analysis and logs the result as a meal.
// profile is nil for owners that have not finished onboarding.
func (s *MealService) Analyze(ctx context.Context, owner models.MealOwner, profile *models.Profile, mimeType, data string) (*models.Meal, error) {
	analysis, err := s.insights.AnalyzeFood(ctx, profile, mimeType, data)
	if err != nil {
		return nil, err
	}
	meal := &models.Meal{
		PhotoData:   fmt.Sprintf("data:%s;base64,%s", mimeType, data),
		Ingredients: analysis.Ingredients,
		Calories:    analysis.EstimatedCalories,
		Analysis:    *analysis,
	}
	if err := s.Log(ctx, owner, meal); err != nil {
		return nil, err
	}
	return meal, nil
}

// Recent returns up to limit meals, newest first. limit <= 0 uses RecentMeals.
func (s *MealService) Recent(ctx context.Context, owner models.MealOwner, limit int) ([]models.Meal, error) {
	if limit <= 0 {
		limit = RecentMeals
	}
	return s.repo.ListByOwner(ctx, owner.Key(), limit)
}

// All returns every meal of owner, newest first.
func (s *MealService) All(ctx context.Context, owner models.MealOwner) ([]models.Meal, error) {
	return s.repo.ListByOwner(ctx, owner.Key(), 0)
}

// AdoptTemporary moves the meals logged before onboarding onto the new
// profile and re-applies the food_logger rule.
func (s *MealService) AdoptTemporary(ctx context.Context, userID, profileID uint) (int64, error) {
	temp := models.MealOwner{UserID: userID}
	to := models.MealOwner{ProfileID: profileID, UserID: userID}
	moved, err := s.repo.ReassignOwner(ctx, temp.Key(), to)
	if err != nil {
		return 0, fmt.Errorf("failed to adopt meals: %w", err)
	}
	if moved == 0 || s.badges == nil {
		return moved, nil
	}
	count, err := s.repo.CountByOwner(ctx, to.Key())
	if err != nil {
		return moved, fmt.Errorf("failed to count meals: %w", err)
	}
	_, err = s.badges.CheckMealCount(ctx, profileID, count)
	return moved, err
}
