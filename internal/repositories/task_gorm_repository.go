package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"nodefit/internal/models"
)

// GORMTaskRepository is a GORM implementation of TaskRepository.
type GORMTaskRepository struct {
	db *gorm.DB
}

// NewGORMTaskRepository creates a new instance of GORMTaskRepository.
func NewGORMTaskRepository(db *gorm.DB) *GORMTaskRepository {
	return &GORMTaskRepository{db: db}
}

func (r *GORMTaskRepository) Create(ctx context.Context, task *models.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}
	return nil
}

func (r *GORMTaskRepository) ListByProfile(ctx context.Context, profileID uint) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.WithContext(ctx).Where("profile_id = ?", profileID).Order("id desc").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks of profile %d: %w", profileID, err)
	}
	return tasks, nil
}

func (r *GORMTaskRepository) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("task with ID %d %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get task by ID %d: %w", id, err)
	}
	return &task, nil
}

func (r *GORMTaskRepository) Toggle(ctx context.Context, id uint) (*models.Task, error) {
	res := r.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).
		Update("completed", gorm.Expr("NOT completed"))
	if res.Error != nil {
		return nil, fmt.Errorf("failed to toggle task %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("task with ID %d %w for toggle", id, ErrNotFound)
	}
	return r.GetByID(ctx, id)
}

func (r *GORMTaskRepository) DeleteCompleted(ctx context.Context, profileID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("profile_id = ? AND completed = ?", profileID, true).Delete(&models.Task{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to clear completed tasks of profile %d: %w", profileID, res.Error)
	}
	return res.RowsAffected, nil
}
