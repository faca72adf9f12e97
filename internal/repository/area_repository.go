package repository

import (
	"context"

	"github.com/ashokvas/flowspace/internal/models"
	appErr "github.com/ashokvas/flowspace/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AreaRepository interface {
	BaseRepository[models.Area]
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Area, error)
}

type areaRepository struct {
	BaseRepository[models.Area]
	db *gorm.DB
}

func NewAreaRepository(db *gorm.DB) AreaRepository {
	return &areaRepository{BaseRepository: NewBaseRepository[models.Area](db), db: db}
}

// ListByProject returns a project's areas in creation order.
func (r *areaRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Area, error) {
	var out []models.Area
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list areas by project failed")
	}
	return out, nil
}
