package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"nodefit/internal/models"
	"nodefit/internal/repositories"
	"nodefit/pkg/logger"
)

// ProfileService handles business logic related to profiles.
type ProfileService struct {
	repo   repositories.ProfileRepository
	events EventPublisher
	logger *zap.Logger
}

// NewProfileService creates a new ProfileService.
func NewProfileService(repo repositories.ProfileRepository, events EventPublisher, log *zap.Logger) *ProfileService {
	return &ProfileService{
		repo:   repo,
		events: publisherOrNop(events),
		logger: logger.OrNop(log),
	}
}

// Create stores a new profile for profile.UserID.
func (s *ProfileService) Create(ctx context.Context, profile *models.Profile) error {
	profile.Name = strings.TrimSpace(profile.Name)
	if profile.Name == "" {
		return fmt.Errorf("profile name is required: %w", ErrInvalidInput)
	}
	if err := s.repo.Create(ctx, profile); err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	publish(ctx, s.events, s.logger, EventProfileCreated, map[string]interface{}{
		"profile_id": profile.ID,
		"user_id":    profile.UserID,
	})
	return nil
}

// GetByID retrieves a single profile by its ID.
func (s *ProfileService) GetByID(ctx context.Context, id uint) (*models.Profile, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByUserID returns the user's profile. When several exist the oldest wins.
func (s *ProfileService) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// Update replaces the attributes of an existing profile.
func (s *ProfileService) Update(ctx context.Context, profile *models.Profile) error {
	profile.Name = strings.TrimSpace(profile.Name)
	if profile.Name == "" {
		return fmt.Errorf("profile name is required: %w", ErrInvalidInput)
	}
	return s.repo.Update(ctx, profile)
}

// Delete removes the profile and all of its records in one transaction.
func (s *ProfileService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("profile deleted", zap.Uint("profile_id", id))
	publish(ctx, s.events, s.logger, EventProfileDeleted, map[string]interface{}{"profile_id": id})
	return nil
}
