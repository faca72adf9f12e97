package repository

import (
	"context"

	"github.com/ashokvas/flowspace/internal/models"
	appErr "github.com/ashokvas/flowspace/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepository interface {
	BaseRepository[models.Task]
	ListByArea(ctx context.Context, areaID uuid.UUID) ([]models.Task, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Task, error)
}

type taskRepository struct {
	BaseRepository[models.Task]
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{BaseRepository: NewBaseRepository[models.Task](db), db: db}
}

// ListByArea returns an area's tasks in creation order.
func (r *taskRepository) ListByArea(ctx context.Context, areaID uuid.UUID) ([]models.Task, error) {
	var out []models.Task
	if err := r.db.WithContext(ctx).Where("area_id = ?", areaID).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list tasks by area failed")
	}
	return out, nil
}

// ListByUser returns all of a user's tasks across projects, newest first.
func (r *taskRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Task, error) {
	var out []models.Task
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list tasks by user failed")
	}
	return out, nil
}
