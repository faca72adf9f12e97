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

type NoteService interface {
	CreateNote(ctx context.Context, userID uuid.UUID, input *CreateNoteInput) (*models.Note, error)
	ListNotesByProject(ctx context.Context, projectID uuid.UUID) ([]models.Note, error)
	ListNotesByArea(ctx context.Context, areaID uuid.UUID) ([]models.Note, error)
	UpdateNote(ctx context.Context, noteID uuid.UUID, updates *UpdateNoteInput) (*models.Note, error)
	DeleteNote(ctx context.Context, noteID uuid.UUID) error
}

type CreateNoteInput struct {
	ProjectID uuid.UUID
	AreaID    *uuid.UUID
	Title     string
	Content   string
}

type UpdateNoteInput struct {
	Title   *string
	Content *string
}

type noteService struct {
	noteRepo repository.NoteRepository
	areaRepo repository.AreaRepository
	pub      realtime.Publisher
}

func NewNoteService(noteRepo repository.NoteRepository, areaRepo repository.AreaRepository, pub realtime.Publisher) NoteService {
	return &noteService{noteRepo: noteRepo, areaRepo: areaRepo, pub: pub}
}

var _ NoteService = (*noteService)(nil)

func (s *noteService) CreateNote(ctx context.Context, userID uuid.UUID, input *CreateNoteInput) (*models.Note, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, appErr.New(appErr.CodeInvalid, "note title is required")
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

	n := &models.Note{
		UserID:    userID,
		ProjectID: input.ProjectID,
		AreaID:    input.AreaID,
		Title:     input.Title,
		Content:   input.Content,
	}
	if err := s.noteRepo.Create(ctx, n); err != nil {
		return nil, err
	}

	logger.L().Info("note created", zap.String("note_id", n.ID.String()), zap.String("project_id", input.ProjectID.String()))
	s.publishFor(n)
	return n, nil
}

func (s *noteService) ListNotesByProject(ctx context.Context, projectID uuid.UUID) ([]models.Note, error) {
	return s.noteRepo.ListByProject(ctx, projectID)
}

func (s *noteService) ListNotesByArea(ctx context.Context, areaID uuid.UUID) ([]models.Note, error) {
	return s.noteRepo.ListByArea(ctx, areaID)
}

func (s *noteService) UpdateNote(ctx context.Context, noteID uuid.UUID, updates *UpdateNoteInput) (*models.Note, error) {
	fields := map[string]any{}
	if updates.Title != nil {
		if strings.TrimSpace(*updates.Title) == "" {
			return nil, appErr.New(appErr.CodeInvalid, "note title is required")
		}
		fields["title"] = *updates.Title
	}
	if updates.Content != nil {
		fields["content"] = *updates.Content
	}

	if err := s.noteRepo.Patch(ctx, noteID, fields); err != nil {
		return nil, err
	}

	var n models.Note
	if err := s.noteRepo.GetByID(ctx, noteID, &n); err != nil {
		return nil, err
	}
	s.publishFor(&n)
	return &n, nil
}

// DeleteNote removes the note row only. Blobs referenced by its attachment
// metadata are reclaimed by the periodic sweep, not inline.
func (s *noteService) DeleteNote(ctx context.Context, noteID uuid.UUID) error {
	var n models.Note
	if err := s.noteRepo.GetByID(ctx, noteID, &n); err != nil {
		return err
	}
	if err := s.noteRepo.Delete(ctx, noteID); err != nil {
		return err
	}

	logger.L().Info("note deleted", zap.String("note_id", noteID.String()), zap.Int("attachments", len(n.Attachments)))
	s.publishFor(&n)
	return nil
}

func (s *noteService) publishFor(n *models.Note) {
	topics := []string{realtime.TopicNotesByProject(n.ProjectID)}
	if n.AreaID != nil {
		topics = append(topics, realtime.TopicNotesByArea(*n.AreaID))
	}
	s.pub.Publish(topics...)
}
