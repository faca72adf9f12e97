package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ashokvas/flowspace/internal/models"
	"github.com/ashokvas/flowspace/internal/realtime"
	"github.com/ashokvas/flowspace/internal/repository"
	appErr "github.com/ashokvas/flowspace/pkg/errors"
	"github.com/ashokvas/flowspace/pkg/logger"
)

type AreaService interface {
	CreateArea(ctx context.Context, userID uuid.UUID, input *CreateAreaInput) (*models.Area, error)
	ListAreas(ctx context.Context, projectID uuid.UUID) ([]models.Area, error)
	UpdateArea(ctx context.Context, areaID uuid.UUID, updates *UpdateAreaInput) (*models.Area, error)
	DeleteArea(ctx context.Context, areaID uuid.UUID) error
}

type CreateAreaInput struct {
	ProjectID   uuid.UUID
	Name        string
	Description string
}

// UpdateAreaInput deliberately has no ProjectID: an area is never repointed
// to another project after creation.
type UpdateAreaInput struct {
	Name        *string
	Description *string
}

type areaService struct {
	db          *gorm.DB
	areaRepo    repository.AreaRepository
	projectRepo repository.ProjectRepository
	pub         realtime.Publisher
}

func NewAreaService(db *gorm.DB, areaRepo repository.AreaRepository, projectRepo repository.ProjectRepository, pub realtime.Publisher) AreaService {
	return &areaService{db: db, areaRepo: areaRepo, projectRepo: projectRepo, pub: pub}
}

var _ AreaService = (*areaService)(nil)

func (s *areaService) CreateArea(ctx context.Context, userID uuid.UUID, input *CreateAreaInput) (*models.Area, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, appErr.New(appErr.CodeInvalid, "area name is required")
	}
	var p models.Project
	if err := s.projectRepo.GetByID(ctx, input.ProjectID, &p); err != nil {
		return nil, err
	}

	a := &models.Area{
		UserID:      userID,
		ProjectID:   input.ProjectID,
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.areaRepo.Create(ctx, a); err != nil {
		return nil, err
	}

	logger.L().Info("area created", zap.String("area_id", a.ID.String()), zap.String("project_id", input.ProjectID.String()))
	s.pub.Publish(realtime.TopicAreas(input.ProjectID))
	return a, nil
}

func (s *areaService) ListAreas(ctx context.Context, projectID uuid.UUID) ([]models.Area, error) {
	return s.areaRepo.ListByProject(ctx, projectID)
}

func (s *areaService) UpdateArea(ctx context.Context, areaID uuid.UUID, updates *UpdateAreaInput) (*models.Area, error) {
	fields := map[string]any{}
	if updates.Name != nil {
		if strings.TrimSpace(*updates.Name) == "" {
			return nil, appErr.New(appErr.CodeInvalid, "area name is required")
		}
		fields["name"] = *updates.Name
	}
	if updates.Description != nil {
		fields["description"] = *updates.Description
	}

	if err := s.areaRepo.Patch(ctx, areaID, fields); err != nil {
		return nil, err
	}

	var a models.Area
	if err := s.areaRepo.GetByID(ctx, areaID, &a); err != nil {
		return nil, err
	}
	s.pub.Publish(realtime.TopicAreas(a.ProjectID))
	return &a, nil
}

// DeleteArea removes every task, note, and resource referencing the area and
// then the area itself, child before parent, in one transaction.
// Project-level notes and resources are untouched.
func (s *areaService) DeleteArea(ctx context.Context, areaID uuid.UUID) error {
	var a models.Area
	if err := s.areaRepo.GetByID(ctx, areaID, &a); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("area_id = ?", areaID).Delete(&models.Task{}).Error; err != nil {
			return appErr.Wrap(err, appErr.CodeInternal, "delete area tasks failed")
		}
		if err := tx.Where("area_id = ?", areaID).Delete(&models.Note{}).Error; err != nil {
			return appErr.Wrap(err, appErr.CodeInternal, "delete area notes failed")
		}
		if err := tx.Where("area_id = ?", areaID).Delete(&models.Resource{}).Error; err != nil {
			return appErr.Wrap(err, appErr.CodeInternal, "delete area resources failed")
		}
		res := tx.Delete(&models.Area{}, "id = ?", areaID)
		if res.Error != nil {
			return appErr.Wrap(res.Error, appErr.CodeInternal, "delete area failed")
		}
		if res.RowsAffected == 0 {
			return appErr.New(appErr.CodeNotFound, "area not found")
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.L().Info("area deleted", zap.String("area_id", areaID.String()), zap.String("project_id", a.ProjectID.String()))
	s.pub.Publish(
		realtime.TopicAreas(a.ProjectID),
		realtime.TopicTasksByArea(areaID),
		realtime.TopicTasksByUser(a.UserID),
		realtime.TopicNotesByArea(areaID),
		realtime.TopicNotesByProject(a.ProjectID),
		realtime.TopicResourcesByArea(areaID),
		realtime.TopicResourcesByProject(a.ProjectID),
	)
	return nil
}
