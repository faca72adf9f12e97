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

type ProjectService interface {
	CreateProject(ctx context.Context, userID uuid.UUID, input *CreateProjectInput) (*models.Project, error)
	GetProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error)
	ListProjects(ctx context.Context, userID uuid.UUID) ([]models.Project, error)
	UpdateProject(ctx context.Context, projectID uuid.UUID, updates *UpdateProjectInput) (*models.Project, error)
	DeleteProject(ctx context.Context, projectID uuid.UUID) error
}

type CreateProjectInput struct {
	Name        string
	Description string
}

type UpdateProjectInput struct {
	Name        *string
	Description *string
}

type projectService struct {
	db          *gorm.DB
	projectRepo repository.ProjectRepository
	pub         realtime.Publisher
}

func NewProjectService(db *gorm.DB, projectRepo repository.ProjectRepository, pub realtime.Publisher) ProjectService {
	return &projectService{db: db, projectRepo: projectRepo, pub: pub}
}

var _ ProjectService = (*projectService)(nil)

func (s *projectService) CreateProject(ctx context.Context, userID uuid.UUID, input *CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, appErr.New(appErr.CodeInvalid, "project name is required")
	}

	p := &models.Project{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.projectRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	logger.L().Info("project created", zap.String("project_id", p.ID.String()), zap.String("user_id", userID.String()))
	s.pub.Publish(realtime.TopicProjects(userID))
	return p, nil
}

func (s *projectService) GetProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	var p models.Project
	if err := s.projectRepo.GetByID(ctx, projectID, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *projectService) ListProjects(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	return s.projectRepo.ListByUser(ctx, userID)
}

func (s *projectService) UpdateProject(ctx context.Context, projectID uuid.UUID, updates *UpdateProjectInput) (*models.Project, error) {
	fields := map[string]any{}
	if updates.Name != nil {
		if strings.TrimSpace(*updates.Name) == "" {
			return nil, appErr.New(appErr.CodeInvalid, "project name is required")
		}
		fields["name"] = *updates.Name
	}
	if updates.Description != nil {
		fields["description"] = *updates.Description
	}

	if err := s.projectRepo.Patch(ctx, projectID, fields); err != nil {
		return nil, err
	}

	var p models.Project
	if err := s.projectRepo.GetByID(ctx, projectID, &p); err != nil {
		return nil, err
	}
	s.pub.Publish(realtime.TopicProjects(p.UserID))
	return &p, nil
}

// DeleteProject cascades over the full dependent-record closure: per-area
// tasks and the areas themselves, then project-wide notes and resources, then
// the project record. Notes and resources are swept by the project index in
// one scan each rather than area by area; they carry a denormalized
// project_id, so the delete stays at four indexed scans regardless of area
// count. The whole cascade runs in a single transaction so a failure at any
// step leaves nothing partially deleted.
func (s *projectService) DeleteProject(ctx context.Context, projectID uuid.UUID) error {
	var p models.Project
	if err := s.projectRepo.GetByID(ctx, projectID, &p); err != nil {
		return err
	}

	var areaIDs []uuid.UUID
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var areas []models.Area
		if err := tx.Where("project_id = ?", projectID).Order("created_at ASC").Find(&areas).Error; err != nil {
			return appErr.Wrap(err, appErr.CodeInternal, "list project areas failed")
		}
		for _, area := range areas {
			areaIDs = append(areaIDs, area.ID)
			if err := tx.Where("area_id = ?", area.ID).Delete(&models.Task{}).Error; err != nil {
				return appErr.Wrap(err, appErr.CodeInternal, "delete area tasks failed")
			}
			if err := tx.Delete(&models.Area{}, "id = ?", area.ID).Error; err != nil {
				return appErr.Wrap(err, appErr.CodeInternal, "delete area failed")
			}
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.Note{}).Error; err != nil {
			return appErr.Wrap(err, appErr.CodeInternal, "delete project notes failed")
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.Resource{}).Error; err != nil {
			return appErr.Wrap(err, appErr.CodeInternal, "delete project resources failed")
		}
		res := tx.Delete(&models.Project{}, "id = ?", projectID)
		if res.Error != nil {
			return appErr.Wrap(res.Error, appErr.CodeInternal, "delete project failed")
		}
		if res.RowsAffected == 0 {
			return appErr.New(appErr.CodeNotFound, "project not found")
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.L().Info("project deleted",
		zap.String("project_id", projectID.String()),
		zap.Int("areas", len(areaIDs)),
		zap.String("user_id", p.UserID.String()),
	)

	topics := []string{
		realtime.TopicProjects(p.UserID),
		realtime.TopicAreas(projectID),
		realtime.TopicTasksByUser(p.UserID),
		realtime.TopicNotesByProject(projectID),
		realtime.TopicResourcesByProject(projectID),
	}
	for _, areaID := range areaIDs {
		topics = append(topics,
			realtime.TopicTasksByArea(areaID),
			realtime.TopicNotesByArea(areaID),
			realtime.TopicResourcesByArea(areaID),
		)
	}
	s.pub.Publish(topics...)
	return nil
}
