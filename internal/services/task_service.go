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

// TaskService manages a profile's daily tasks.
type TaskService struct {
	repo     repositories.TaskRepository
	insights *InsightService
	logger   *zap.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo repositories.TaskRepository, insights *InsightService, log *zap.Logger) *TaskService {
	return &TaskService{repo: repo, insights: insights, logger: logger.OrNop(log)}
}

// Add creates an open task.
func (s *TaskService) Add(ctx context.Context, profileID uint, text string) (*models.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("task text is required: %w", ErrInvalidInput)
	}
	task := &models.Task{ProfileID: profileID, Text: text}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to add task: %w", err)
	}
	return task, nil
}

// List returns the profile's tasks, newest first.
func (s *TaskService) List(ctx context.Context, profileID uint) ([]models.Task, error) {
	return s.repo.ListByProfile(ctx, profileID)
}

// Toggle flips the completion flag of a task owned by profileID.
func (s *TaskService) Toggle(ctx context.Context, profileID, taskID uint) (*models.Task, error) {
	task, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.ProfileID != profileID {
		return nil, fmt.Errorf("task %d: %w", taskID, ErrPermissionDenied)
	}
	return s.repo.Toggle(ctx, taskID)
}

// ClearCompleted deletes the profile's completed tasks.
func (s *TaskService) ClearCompleted(ctx context.Context, profileID uint) (int64, error) {
	return s.repo.DeleteCompleted(ctx, profileID)
}

// Generate asks the AI collaborator for daily tasks and stores them.
func (s *TaskService) Generate(ctx context.Context, profile *models.Profile) ([]models.Task, error) {
	texts, err := s.insights.DailyTasks(ctx, profile)
	if err != nil {
		return nil, err
	}
	created := make([]models.Task, 0, len(texts))
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		task, err := s.Add(ctx, profile.ID, text)
		if err != nil {
			return created, err
		}
		created = append(created, *task)
	}
	s.logger.Debug("tasks generated", zap.Uint("profile_id", profile.ID), zap.Int("count", len(created)))
	return created, nil
}
