package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ashokvas/flowspace/internal/models"
	"github.com/ashokvas/flowspace/internal/realtime"
	"github.com/ashokvas/flowspace/internal/repository"
	appErr "github.com/ashokvas/flowspace/pkg/errors"
	"github.com/ashokvas/flowspace/pkg/logger"
)

type ResourceService interface {
	CreateResource(ctx context.Context, userID uuid.UUID, input *CreateResourceInput) (*models.Resource, error)
	ListResourcesByProject(ctx context.Context, projectID uuid.UUID) ([]models.Resource, error)
	ListResourcesByArea(ctx context.Context, areaID uuid.UUID) ([]models.Resource, error)
	UpdateResource(ctx context.Context, resourceID uuid.UUID, updates *UpdateResourceInput) (*models.Resource, error)
	DeleteResource(ctx context.Context, resourceID uuid.UUID) error
}

type CreateResourceInput struct {
	ProjectID   uuid.UUID
	AreaID      *uuid.UUID
	Title       string
	URL         string
	Description string
}

type UpdateResourceInput struct {
	Title       *string
	URL         *string
	Description *string
}

type resourceService struct {
	resourceRepo repository.ResourceRepository
	areaRepo     repository.AreaRepository
	pub          realtime.Publisher
}

func NewResourceService(resourceRepo repository.ResourceRepository, areaRepo repository.AreaRepository, pub realtime.Publisher) ResourceService {
	return &resourceService{resourceRepo: resourceRepo, areaRepo: areaRepo, pub: pub}
}

var _ ResourceService = (*resourceService)(nil)

func (s *resourceService) CreateResource(ctx context.Context, userID uuid.UUID, input *CreateResourceInput) (*models.Resource, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, appErr.New(appErr.CodeInvalid, "resource title is required")
	}
	if input.AreaID != nil {
		var area models.Area
		if err := s.areaRepo.GetByID(ctx, *input.AreaID, &area); err != nil {
			return nil, err
		}
		if area.ProjectID != input.ProjectID {
			return nil, appErr.New(appErr.CodeInvalid, "area does not belong to project")
		}
	}

	r := &models.Resource{
		UserID:      userID,
		ProjectID:   input.ProjectID,
		AreaID:      input.AreaID,
		Title:       input.Title,
		URL:         input.URL,
		Description: input.Description,
	}
	if err := s.resourceRepo.Create(ctx, r); err != nil {
		return nil, err
	}

	logger.L().Info("resource created", zap.String("resource_id", r.ID.String()), zap.String("project_id", input.ProjectID.String()))
	s.publishFor(r)
	return r, nil
}

func (s *resourceService) ListResourcesByProject(ctx context.Context, projectID uuid.UUID) ([]models.Resource, error) {
	return s.resourceRepo.ListByProject(ctx, projectID)
}

func (s *resourceService) ListResourcesByArea(ctx context.Context, areaID uuid.UUID) ([]models.Resource, error) {
	return s.resourceRepo.ListByArea(ctx, areaID)
}

func (s *resourceService) UpdateResource(ctx context.Context, resourceID uuid.UUID, updates *UpdateResourceInput) (*models.Resource, error) {
	fields := map[string]any{}
	if updates.Title != nil {
		if strings.TrimSpace(*updates.Title) == "" {
			return nil, appErr.New(appErr.CodeInvalid, "resource title is required")
		}
		fields["title"] = *updates.Title
	}
	if updates.URL != nil {
		fields["url"] = *updates.URL
	}
	if updates.Description != nil {
		fields["description"] = *updates.Description
	}

	if err := s.resourceRepo.Patch(ctx, resourceID, fields); err != nil {
		return nil, err
	}

	var r models.Resource
	if err := s.resourceRepo.GetByID(ctx, resourceID, &r); err != nil {
		return nil, err
	}
	s.publishFor(&r)
	return &r, nil
}

func (s *resourceService) DeleteResource(ctx context.Context, resourceID uuid.UUID) error {
	var r models.Resource
	if err := s.resourceRepo.GetByID(ctx, resourceID, &r); err != nil {
		return err
	}
	if err := s.resourceRepo.Delete(ctx, resourceID); err != nil {
		return err
	}

	logger.L().Info("resource deleted", zap.String("resource_id", resourceID.String()))
	s.publishFor(&r)
	return nil
}

func (s *resourceService) publishFor(r *models.Resource) {
	topics := []string{realtime.TopicResourcesByProject(r.ProjectID)}
	if r.AreaID != nil {
		topics = append(topics, realtime.TopicResourcesByArea(*r.AreaID))
	}
	s.pub.Publish(topics...)
}
