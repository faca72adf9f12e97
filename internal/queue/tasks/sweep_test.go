package tasks

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ashokvas/flowspace/internal/models"
	"github.com/ashokvas/flowspace/internal/storage"
	appErr "github.com/ashokvas/flowspace/pkg/errors"
	"github.com/ashokvas/flowspace/pkg/logger"
)

func TestMain(m *testing.M) {
	_, err := logger.Init("error", "console")
	if err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) Create(ctx context.Context, obj *models.Note) error {
	args := m.Called(ctx, obj)
	return args.Error(0)
}

func (m *mockNoteRepository) GetByID(ctx context.Context, id any, dest *models.Note) error {
	args := m.Called(ctx, id, dest)
	return args.Error(0)
}

func (m *mockNoteRepository) Patch(ctx context.Context, id any, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *mockNoteRepository) Delete(ctx context.Context, id any) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockNoteRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Note, error) {
	args := m.Called(ctx, projectID)
	if v := args.Get(0); v != nil {
		return v.([]models.Note), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNoteRepository) ListByArea(ctx context.Context, areaID uuid.UUID) ([]models.Note, error) {
	args := m.Called(ctx, areaID)
	if v := args.Get(0); v != nil {
		return v.([]models.Note), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNoteRepository) ReferencedStorageIDs(ctx context.Context) (map[string]struct{}, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(map[string]struct{}), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockBlobStore struct {
	mock.Mock
}

func (m *mockBlobStore) Put(ctx context.Context, ref, contentType string, r io.Reader) (int64, error) {
	args := m.Called(ctx, ref, contentType, r)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBlobStore) Open(ctx context.Context, ref string) (io.ReadCloser, string, error) {
	args := m.Called(ctx, ref)
	if v := args.Get(0); v != nil {
		return v.(io.ReadCloser), args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}

func (m *mockBlobStore) Delete(ctx context.Context, ref string) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *mockBlobStore) URL(ctx context.Context, ref string) (string, error) {
	args := m.Called(ctx, ref)
	return args.String(0), args.Error(1)
}

func (m *mockBlobStore) List(ctx context.Context) ([]storage.BlobInfo, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]storage.BlobInfo), args.Error(1)
	}
	return nil, args.Error(1)
}

func newSweepTask(t *testing.T) *asynq.Task {
	t.Helper()
	task, err := NewBlobSweepTask()
	require.NoError(t, err)
	return task
}

func TestHandleBlobSweep(t *testing.T) {
	referenced := storage.NewRef()
	stranded := storage.NewRef()
	fresh := storage.NewRef()

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	old := now.Add(-2 * time.Hour)

	t.Run("sweeps only stranded blobs past the grace period", func(t *testing.T) {
		noteRepo := &mockNoteRepository{}
		blobs := &mockBlobStore{}
		h := NewSweepTaskHandler(noteRepo, blobs, time.Hour)
		h.now = func() time.Time { return now }

		noteRepo.On("ReferencedStorageIDs", mock.Anything).
			Return(map[string]struct{}{referenced: {}}, nil).Once()
		blobs.On("List", mock.Anything).Return([]storage.BlobInfo{
			{Ref: referenced, ModTime: old},
			{Ref: stranded, ModTime: old},
			{Ref: fresh, ModTime: now.Add(-time.Minute)},
		}, nil).Once()
		blobs.On("Delete", mock.Anything, stranded).Return(nil).Once()

		err := h.HandleBlobSweep(context.Background(), newSweepTask(t))
		require.NoError(t, err)
		mock.AssertExpectationsForObjects(t, noteRepo, blobs)
	})

	t.Run("missing blob during delete is not an error", func(t *testing.T) {
		noteRepo := &mockNoteRepository{}
		blobs := &mockBlobStore{}
		h := NewSweepTaskHandler(noteRepo, blobs, time.Hour)
		h.now = func() time.Time { return now }

		noteRepo.On("ReferencedStorageIDs", mock.Anything).
			Return(map[string]struct{}{}, nil).Once()
		blobs.On("List", mock.Anything).Return([]storage.BlobInfo{
			{Ref: stranded, ModTime: old},
		}, nil).Once()
		blobs.On("Delete", mock.Anything, stranded).
			Return(appErr.New(appErr.CodeNotFound, "blob not found")).Once()

		err := h.HandleBlobSweep(context.Background(), newSweepTask(t))
		require.NoError(t, err)
		mock.AssertExpectationsForObjects(t, noteRepo, blobs)
	})

	t.Run("listing failure aborts the sweep", func(t *testing.T) {
		noteRepo := &mockNoteRepository{}
		blobs := &mockBlobStore{}
		h := NewSweepTaskHandler(noteRepo, blobs, time.Hour)

		noteRepo.On("ReferencedStorageIDs", mock.Anything).
			Return(map[string]struct{}{}, nil).Once()
		blobs.On("List", mock.Anything).
			Return(nil, appErr.New(appErr.CodeInternal, "list blobs failed")).Once()

		err := h.HandleBlobSweep(context.Background(), newSweepTask(t))
		require.Error(t, err)
		mock.AssertExpectationsForObjects(t, noteRepo, blobs)
	})
}
