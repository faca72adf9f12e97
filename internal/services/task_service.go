package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/ashokvas/flowspace/internal/models"
	"github.com/ashokvas/flowspace/internal/realtime"
	"github.com/ashokvas/flowspace/internal/repository"
	"github.com/ashokvas/flowspace/internal/taskfilter"
	appErr "github.com/ashokvas/flowspace/pkg/errors"
	"github.com/ashokvas/flowspace/pkg/logger"
)

type TaskService interface {
	CreateTask(ctx context.Context, userID uuid.UUID, input *CreateTaskInput) (*models.Task, error)
	ListTasksByArea(ctx context.Context, areaID uuid.UUID) ([]models.Task, error)
	ListTasksForUser(ctx context.Context, userID uuid.UUID, spec taskfilter.Spec, showArchived bool) (*TaskListing, error)
	UpdateTask(ctx context.Context, taskID uuid.UUID, updates *UpdateTaskInput) (*models.Task, error)
	CycleTaskStatus(ctx context.Context, taskID uuid.UUID) (*models.Task, error)
	DeleteTask(ctx context.Context, taskID uuid.UUID) error
}

type CreateTaskInput struct {
	ProjectID uuid.UUID
	AreaID    uuid.UUID
	Title     string
	Notes     string
	Status    string
	Priority  string
	DueDate   string
	Tags      []string
}

// UpdateTaskInput is a targeted partial patch; nil fields are preserved.
// AreaID and ProjectID are absent: tasks are never repointed.
type UpdateTaskInput struct {
	Title    *string
	Notes    *string
	Status   *string
	Priority *string
	DueDate  *string
	Tags     *[]string
	Archived *bool
}

// TaskListing is a filtered task view plus the tag facets of the full
// collection, used to populate filter options.
type TaskListing struct {
	Tasks []models.Task `json:"tasks"`
	Tags  []string      `json:"tags"`
}

type taskService struct {
	taskRepo repository.TaskRepository
	areaRepo repository.AreaRepository
	pub      realtime.Publisher
	now      func() time.Time
}

func NewTaskService(taskRepo repository.TaskRepository, areaRepo repository.AreaRepository, pub realtime.Publisher) TaskService {
	return &taskService{taskRepo: taskRepo, areaRepo: areaRepo, pub: pub, now: time.Now}
}

var _ TaskService = (*taskService)(nil)

func (s *taskService) CreateTask(ctx context.Context, userID uuid.UUID, input *CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, appErr.New(appErr.CodeInvalid, "task title is required")
	}

	var area models.Area
	if err := s.areaRepo.GetByID(ctx, input.AreaID, &area); err != nil {
		return nil, err
	}
	// ProjectID is denormalized onto the task; it must agree with the area's.
	if area.ProjectID != input.ProjectID {
		return nil, appErr.New(appErr.CodeInvalid, "area does not belong to project")
	}

	status := input.Status
	if status == "" {
		status = models.StatusTodo
	}

	t := &models.Task{
		UserID:    userID,
		ProjectID: input.ProjectID,
		AreaID:    input.AreaID,
		Title:     input.Title,
		Notes:     input.Notes,
		Status:    status,
		Priority:  input.Priority,
		DueDate:   input.DueDate,
		Tags:      datatypes.NewJSONSlice(input.Tags),
	}
	if err := s.taskRepo.Create(ctx, t); err != nil {
		return nil, err
	}

	logger.L().Info("task created", zap.String("task_id", t.ID.String()), zap.String("area_id", input.AreaID.String()))
	s.pub.Publish(realtime.TopicTasksByArea(input.AreaID), realtime.TopicTasksByUser(userID))
	return t, nil
}

func (s *taskService) ListTasksByArea(ctx context.Context, areaID uuid.UUID) ([]models.Task, error) {
	return s.taskRepo.ListByArea(ctx, areaID)
}

// ListTasksForUser fetches the user's full task collection and applies the
// filter engine in memory. Tag facets are derived from the whole collection,
// not the filtered slice, so filter options stay stable while filtering.
func (s *taskService) ListTasksForUser(ctx context.Context, userID uuid.UUID, spec taskfilter.Spec, showArchived bool) (*TaskListing, error) {
	all, err := s.taskRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &TaskListing{
		Tasks: taskfilter.Filter(all, spec, showArchived, s.now()),
		Tags:  taskfilter.TagFacets(all),
	}, nil
}

func (s *taskService) UpdateTask(ctx context.Context, taskID uuid.UUID, updates *UpdateTaskInput) (*models.Task, error) {
	fields := map[string]any{}
	if updates.Title != nil {
		if strings.TrimSpace(*updates.Title) == "" {
			return nil, appErr.New(appErr.CodeInvalid, "task title is required")
		}
		fields["title"] = *updates.Title
	}
	if updates.Notes != nil {
		fields["notes"] = *updates.Notes
	}
	if updates.Status != nil {
		switch *updates.Status {
		case models.StatusTodo, models.StatusInProgress, models.StatusDone:
		default:
			return nil, appErr.New(appErr.CodeInvalid, "unknown task status")
		}
		fields["status"] = *updates.Status
	}
	if updates.Priority != nil {
		fields["priority"] = *updates.Priority
	}
	if updates.DueDate != nil {
		fields["due_date"] = *updates.DueDate
	}
	if updates.Tags != nil {
		fields["tags"] = datatypes.NewJSONSlice(*updates.Tags)
	}
	if updates.Archived != nil {
		fields["archived"] = *updates.Archived
	}

	if err := s.taskRepo.Patch(ctx, taskID, fields); err != nil {
		return nil, err
	}

	var t models.Task
	if err := s.taskRepo.GetByID(ctx, taskID, &t); err != nil {
		return nil, err
	}
	s.pub.Publish(realtime.TopicTasksByArea(t.AreaID), realtime.TopicTasksByUser(t.UserID))
	return &t, nil
}

// CycleTaskStatus rotates todo -> inprog -> done -> todo as a single-field patch.
func (s *taskService) CycleTaskStatus(ctx context.Context, taskID uuid.UUID) (*models.Task, error) {
	var t models.Task
	if err := s.taskRepo.GetByID(ctx, taskID, &t); err != nil {
		return nil, err
	}

	next := taskfilter.CycleStatus(t.Status)
	if err := s.taskRepo.Patch(ctx, taskID, map[string]any{"status": next}); err != nil {
		return nil, err
	}
	t.Status = next

	s.pub.Publish(realtime.TopicTasksByArea(t.AreaID), realtime.TopicTasksByUser(t.UserID))
	return &t, nil
}

func (s *taskService) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	var t models.Task
	if err := s.taskRepo.GetByID(ctx, taskID, &t); err != nil {
		return err
	}
	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return err
	}

	logger.L().Info("task deleted", zap.String("task_id", taskID.String()))
	s.pub.Publish(realtime.TopicTasksByArea(t.AreaID), realtime.TopicTasksByUser(t.UserID))
	return nil
}
