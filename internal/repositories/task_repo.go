package repositories

import (
	"context"

	"nodefit/internal/models"
)

// TaskRepository defines the interface for task data access.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	ListByProfile(ctx context.Context, profileID uint) ([]models.Task, error)
	GetByID(ctx context.Context, id uint) (*models.Task, error)
	// Toggle flips the completion flag in place and returns the updated task.
	Toggle(ctx context.Context, id uint) (*models.Task, error)
	DeleteCompleted(ctx context.Context, profileID uint) (int64, error)
}
