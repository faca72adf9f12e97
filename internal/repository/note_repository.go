package repository

import (
	"context"

	"github.com/ashokvas/flowspace/internal/models"
	appErr "github.com/ashokvas/flowspace/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteRepository interface {
	BaseRepository[models.Note]
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Note, error)
	ListByArea(ctx context.Context, areaID uuid.UUID) ([]models.Note, error)
	ReferencedStorageIDs(ctx context.Context) (map[string]struct{}, error)
}

type noteRepository struct {
	BaseRepository[models.Note]
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{BaseRepository: NewBaseRepository[models.Note](db), db: db}
}

// ListByProject returns all notes carrying the project id, both project-direct
// and area-scoped, newest first.
func (r *noteRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Note, error) {
	var out []models.Note
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list notes by project failed")
	}
	return out, nil
}

func (r *noteRepository) ListByArea(ctx context.Context, areaID uuid.UUID) ([]models.Note, error) {
	var out []models.Note
	if err := r.db.WithContext(ctx).Where("area_id = ?", areaID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list notes by area failed")
	}
	return out, nil
}

// ReferencedStorageIDs collects every blob reference held by any note's
// attachment metadata. Used by the blob sweep to decide what is still live.
func (r *noteRepository) ReferencedStorageIDs(ctx context.Context) (map[string]struct{}, error) {
	var notes []models.Note
	if err := r.db.WithContext(ctx).Select("attachments").Find(&notes).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "scan note attachments failed")
	}
	refs := make(map[string]struct{})
	for _, n := range notes {
		for _, a := range n.Attachments {
			refs[a.StorageID] = struct{}{}
		}
	}
	return refs, nil
}
