package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/ashokvas/flowspace/internal/models"
	"github.com/ashokvas/flowspace/internal/realtime"
	"github.com/ashokvas/flowspace/internal/repository"
	"github.com/ashokvas/flowspace/internal/storage"
	appErr "github.com/ashokvas/flowspace/pkg/errors"
	"github.com/ashokvas/flowspace/pkg/logger"
)

type AttachmentService interface {
	// AttachFile appends attachment metadata to a note. Existing entries are
	// never replaced.
	AttachFile(ctx context.Context, noteID uuid.UUID, input *AttachFileInput) (*models.Note, error)
	// RemoveAttachment deletes the backing blob, then drops the matching
	// metadata entry. A storageID absent from the note's list is a no-op.
	RemoveAttachment(ctx context.Context, noteID uuid.UUID, storageID string) (*models.Note, error)
	// ResolveURL returns a fetch URL for a blob. Callers re-resolve per
	// render; nothing is cached here.
	ResolveURL(ctx context.Context, storageID string) (string, error)
}

type AttachFileInput struct {
	StorageID string
	Name      string
	Type      string
	Size      int64
}

type attachmentService struct {
	noteRepo repository.NoteRepository
	blobs    storage.BlobStore
	pub      realtime.Publisher
	now      func() time.Time
}

func NewAttachmentService(noteRepo repository.NoteRepository, blobs storage.BlobStore, pub realtime.Publisher) AttachmentService {
	return &attachmentService{noteRepo: noteRepo, blobs: blobs, pub: pub, now: time.Now}
}

var _ AttachmentService = (*attachmentService)(nil)

func (s *attachmentService) AttachFile(ctx context.Context, noteID uuid.UUID, input *AttachFileInput) (*models.Note, error) {
	if input.StorageID == "" {
		return nil, appErr.New(appErr.CodeInvalid, "storage id is required")
	}

	var n models.Note
	if err := s.noteRepo.GetByID(ctx, noteID, &n); err != nil {
		return nil, err
	}

	mimeType := input.Type
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	n.Attachments = append(n.Attachments, models.Attachment{
		StorageID:  input.StorageID,
		Name:       input.Name,
		Type:       mimeType,
		Size:       input.Size,
		UploadedAt: s.now().UnixMilli(),
	})

	if err := s.noteRepo.Patch(ctx, noteID, map[string]any{"attachments": n.Attachments}); err != nil {
		return nil, err
	}

	logger.L().Info("attachment added",
		zap.String("note_id", noteID.String()),
		zap.String("storage_id", input.StorageID),
		zap.Int64("size", input.Size),
	)
	s.publishFor(&n)
	return &n, nil
}

func (s *attachmentService) RemoveAttachment(ctx context.Context, noteID uuid.UUID, storageID string) (*models.Note, error) {
	var n models.Note
	if err := s.noteRepo.GetByID(ctx, noteID, &n); err != nil {
		return nil, err
	}

	found := false
	kept := make([]models.Attachment, 0, len(n.Attachments))
	for _, a := range n.Attachments {
		if a.StorageID == storageID {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return &n, nil
	}

	// Blob first. If the blob delete fails the metadata stays, so the entry
	// never points at missing data; the reverse gap (blob gone, entry
	// lingering) cannot happen here. An already-missing blob is treated as
	// deleted.
	if err := s.blobs.Delete(ctx, storageID); err != nil && !appErr.IsCode(err, appErr.CodeNotFound) {
		return nil, err
	}

	n.Attachments = datatypes.NewJSONSlice(kept)
	if err := s.noteRepo.Patch(ctx, noteID, map[string]any{"attachments": n.Attachments}); err != nil {
		return nil, err
	}

	logger.L().Info("attachment removed", zap.String("note_id", noteID.String()), zap.String("storage_id", storageID))
	s.publishFor(&n)
	return &n, nil
}

func (s *attachmentService) ResolveURL(ctx context.Context, storageID string) (string, error) {
	return s.blobs.URL(ctx, storageID)
}

func (s *attachmentService) publishFor(n *models.Note) {
	topics := []string{realtime.TopicNotesByProject(n.ProjectID)}
	if n.AreaID != nil {
		topics = append(topics, realtime.TopicNotesByArea(*n.AreaID))
	}
	s.pub.Publish(topics...)
}
