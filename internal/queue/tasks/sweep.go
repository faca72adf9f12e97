package tasks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/ashokvas/flowspace/internal/repository"
	"github.com/ashokvas/flowspace/internal/storage"
	appErr "github.com/ashokvas/flowspace/pkg/errors"
	"github.com/ashokvas/flowspace/pkg/logger"
)

// TypeBlobSweep is the asynq task type for the stranded-blob sweep.
const TypeBlobSweep = "blob:sweep"

// SweepPayload is the task payload for blob sweep tasks.
type SweepPayload struct {
	RequestedAt time.Time `json:"requested_at"`
}

// NewBlobSweepTask builds an enqueueable sweep task.
func NewBlobSweepTask() (*asynq.Task, error) {
	payload, err := json.Marshal(SweepPayload{RequestedAt: time.Now()})
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "marshal sweep payload failed")
	}
	return asynq.NewTask(TypeBlobSweep, payload), nil
}

// SweepTaskHandler reclaims blobs that were uploaded but never attached to a
// note, or whose note row was deleted out from under them. Blobs younger than
// the grace period are left alone so an upload that is still waiting for its
// metadata write does not get swept mid-flight.
type SweepTaskHandler struct {
	noteRepo repository.NoteRepository
	blobs    storage.BlobStore
	grace    time.Duration
	now      func() time.Time
}

func NewSweepTaskHandler(noteRepo repository.NoteRepository, blobs storage.BlobStore, grace time.Duration) *SweepTaskHandler {
	return &SweepTaskHandler{noteRepo: noteRepo, blobs: blobs, grace: grace, now: time.Now}
}

func (h *SweepTaskHandler) HandleBlobSweep(ctx context.Context, t *asynq.Task) error {
	var p SweepPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		logger.L().Error("invalid sweep task payload", zap.Error(err))
		return err
	}

	referenced, err := h.noteRepo.ReferencedStorageIDs(ctx)
	if err != nil {
		logger.L().Error("collect referenced blobs failed", zap.Error(err))
		return err
	}

	blobs, err := h.blobs.List(ctx)
	if err != nil {
		logger.L().Error("list blobs failed", zap.Error(err))
		return err
	}

	cutoff := h.now().Add(-h.grace)
	swept := 0
	for _, b := range blobs {
		if _, ok := referenced[b.Ref]; ok {
			continue
		}
		if b.ModTime.After(cutoff) {
			continue
		}
		if err := h.blobs.Delete(ctx, b.Ref); err != nil {
			// A blob already gone still counts as swept.
			if appErr.IsCode(err, appErr.CodeNotFound) {
				swept++
				continue
			}
			logger.L().Warn("sweep delete failed", zap.String("ref", b.Ref), zap.Error(err))
			continue
		}
		swept++
	}

	logger.L().Info("blob sweep finished",
		zap.Int("total", len(blobs)),
		zap.Int("referenced", len(referenced)),
		zap.Int("swept", swept),
	)
	return nil
}
