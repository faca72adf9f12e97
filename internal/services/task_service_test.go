package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashokvas/flowspace/internal/models"
	"github.com/ashokvas/flowspace/internal/repository"
	"github.com/ashokvas/flowspace/internal/taskfilter"
	appErr "github.com/ashokvas/flowspace/pkg/errors"
)

func newTaskService(f *fixture) TaskService {
	return NewTaskService(repository.NewTaskRepository(f.db), repository.NewAreaRepository(f.db), f.hub)
}

func TestCreateTaskChecksAreaProjectAgreement(t *testing.T) {
	f := newFixture(t)
	svc := newTaskService(f)

	p1 := f.seedProject(t, "p1")
	p2 := f.seedProject(t, "p2")
	area := f.seedArea(t, p1.ID, "a")

	// Area belongs to p1, task claims p2.
	_, err := svc.CreateTask(testCtx, f.userID, &CreateTaskInput{ProjectID: p2.ID, AreaID: area.ID, Title: "t"})
	assert.True(t, appErr.IsCode(err, appErr.CodeInvalid))

	got, err := svc.CreateTask(testCtx, f.userID, &CreateTaskInput{ProjectID: p1.ID, AreaID: area.ID, Title: "t"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusTodo, got.Status)
}

func TestCreateTaskMissingArea(t *testing.T) {
	f := newFixture(t)
	svc := newTaskService(f)
	p := f.seedProject(t, "p")

	_, err := svc.CreateTask(testCtx, f.userID, &CreateTaskInput{ProjectID: p.ID, AreaID: uuid.New(), Title: "t"})
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestUpdateTaskPartialPatch(t *testing.T) {
	f := newFixture(t)
	svc := newTaskService(f)
	p := f.seedProject(t, "p")
	a := f.seedArea(t, p.ID, "a")
	task := f.seedTask(t, p.ID, a.ID, "title")
	require.NoError(t, f.db.Model(task).Update("notes", "keep").Error)

	due := "2024-06-15"
	archived := true
	got, err := svc.UpdateTask(testCtx, task.ID, &UpdateTaskInput{DueDate: &due, Archived: &archived})
	require.NoError(t, err)
	assert.Equal(t, "title", got.Title)
	assert.Equal(t, "keep", got.Notes)
	assert.Equal(t, "2024-06-15", got.DueDate)
	assert.True(t, got.Archived)
}

func TestUpdateTaskRejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)
	svc := newTaskService(f)
	p := f.seedProject(t, "p")
	a := f.seedArea(t, p.ID, "a")
	task := f.seedTask(t, p.ID, a.ID, "t")

	bad := "blocked"
	_, err := svc.UpdateTask(testCtx, task.ID, &UpdateTaskInput{Status: &bad})
	assert.True(t, appErr.IsCode(err, appErr.CodeInvalid))
}

func TestCycleTaskStatusRotation(t *testing.T) {
	f := newFixture(t)
	svc := newTaskService(f)
	p := f.seedProject(t, "p")
	a := f.seedArea(t, p.ID, "a")
	task := f.seedTask(t, p.ID, a.ID, "t")

	want := []string{models.StatusInProgress, models.StatusDone, models.StatusTodo}
	for _, status := range want {
		got, err := svc.CycleTaskStatus(testCtx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, status, got.Status)
	}

	// Persisted, not just returned.
	var reloaded models.Task
	require.NoError(t, f.db.First(&reloaded, "id = ?", task.ID).Error)
	assert.Equal(t, models.StatusTodo, reloaded.Status)
}

func TestListTasksForUserAppliesFilters(t *testing.T) {
	f := newFixture(t)
	svc := newTaskService(f)
	p := f.seedProject(t, "p")
	a := f.seedArea(t, p.ID, "a")

	_, err := svc.CreateTask(testCtx, f.userID, &CreateTaskInput{
		ProjectID: p.ID, AreaID: a.ID, Title: "urgent", Priority: models.PriorityHigh, Tags: []string{"work"},
	})
	require.NoError(t, err)
	_, err = svc.CreateTask(testCtx, f.userID, &CreateTaskInput{
		ProjectID: p.ID, AreaID: a.ID, Title: "someday", Priority: models.PriorityLow, Tags: []string{"home"},
	})
	require.NoError(t, err)

	listing, err := svc.ListTasksForUser(testCtx, f.userID, taskfilter.Spec{Priority: models.PriorityHigh}, false)
	require.NoError(t, err)
	require.Len(t, listing.Tasks, 1)
	assert.Equal(t, "urgent", listing.Tasks[0].Title)

	// Facets come from the full collection, not the filtered slice.
	assert.ElementsMatch(t, []string{"work", "home"}, listing.Tags)
}

func TestListTasksForUserArchivedPartition(t *testing.T) {
	f := newFixture(t)
	svc := newTaskService(f)
	p := f.seedProject(t, "p")
	a := f.seedArea(t, p.ID, "a")

	active := f.seedTask(t, p.ID, a.ID, "active")
	archived := f.seedTask(t, p.ID, a.ID, "archived")
	require.NoError(t, f.db.Model(archived).Update("archived", true).Error)

	listing, err := svc.ListTasksForUser(testCtx, f.userID, taskfilter.Spec{}, false)
	require.NoError(t, err)
	require.Len(t, listing.Tasks, 1)
	assert.Equal(t, active.ID, listing.Tasks[0].ID)

	listing, err = svc.ListTasksForUser(testCtx, f.userID, taskfilter.Spec{}, true)
	require.NoError(t, err)
	require.Len(t, listing.Tasks, 1)
	assert.Equal(t, archived.ID, listing.Tasks[0].ID)
}

func TestDeleteTaskNotFound(t *testing.T) {
	f := newFixture(t)
	svc := newTaskService(f)

	err := svc.DeleteTask(testCtx, uuid.New())
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}
