package repository

import (
	"context"

	"github.com/ashokvas/flowspace/internal/models"
	appErr "github.com/ashokvas/flowspace/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResourceRepository interface {
	BaseRepository[models.Resource]
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Resource, error)
	ListByArea(ctx context.Context, areaID uuid.UUID) ([]models.Resource, error)
}

type resourceRepository struct {
	BaseRepository[models.Resource]
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{BaseRepository: NewBaseRepository[models.Resource](db), db: db}
}

func (r *resourceRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Resource, error) {
	var out []models.Resource
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list resources by project failed")
	}
	return out, nil
}

func (r *resourceRepository) ListByArea(ctx context.Context, areaID uuid.UUID) ([]models.Resource, error) {
	var out []models.Resource
	if err := r.db.WithContext(ctx).Where("area_id = ?", areaID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list resources by area failed")
	}
	return out, nil
}
