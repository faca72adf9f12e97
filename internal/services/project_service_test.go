package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashokvas/flowspace/internal/models"
	"github.com/ashokvas/flowspace/internal/realtime"
	"github.com/ashokvas/flowspace/internal/repository"
	appErr "github.com/ashokvas/flowspace/pkg/errors"
)

func newProjectService(f *fixture) ProjectService {
	return NewProjectService(f.db, repository.NewProjectRepository(f.db), f.hub)
}

func TestDeleteProjectCascades(t *testing.T) {
	f := newFixture(t)
	svc := newProjectService(f)

	p := f.seedProject(t, "doomed")
	a1 := f.seedArea(t, p.ID, "a1")
	a2 := f.seedArea(t, p.ID, "a2")

	f.seedTask(t, p.ID, a1.ID, "t1")
	f.seedTask(t, p.ID, a1.ID, "t2")
	f.seedTask(t, p.ID, a2.ID, "t3")
	f.seedNote(t, p.ID, &a1.ID, "area note")
	f.seedNote(t, p.ID, nil, "project note")
	f.seedResource(t, p.ID, &a2.ID, "area resource")
	f.seedResource(t, p.ID, nil, "project resource")

	// A second project that must survive untouched.
	keep := f.seedProject(t, "keep")
	keepArea := f.seedArea(t, keep.ID, "ka")
	f.seedTask(t, keep.ID, keepArea.ID, "kt")
	f.seedNote(t, keep.ID, nil, "kn")
	f.seedResource(t, keep.ID, nil, "kr")

	require.NoError(t, svc.DeleteProject(testCtx, p.ID))

	// No rows reference the project, directly or via its areas.
	assert.Zero(t, f.count(t, &models.Project{}, "id = ?", p.ID))
	assert.Zero(t, f.count(t, &models.Area{}, "project_id = ?", p.ID))
	assert.Zero(t, f.count(t, &models.Task{}, "project_id = ?", p.ID))
	assert.Zero(t, f.count(t, &models.Note{}, "project_id = ?", p.ID))
	assert.Zero(t, f.count(t, &models.Resource{}, "project_id = ?", p.ID))
	for _, areaID := range []uuid.UUID{a1.ID, a2.ID} {
		assert.Zero(t, f.count(t, &models.Task{}, "area_id = ?", areaID))
		assert.Zero(t, f.count(t, &models.Note{}, "area_id = ?", areaID))
		assert.Zero(t, f.count(t, &models.Resource{}, "area_id = ?", areaID))
	}

	// The other project's records all survive.
	assert.Equal(t, int64(1), f.count(t, &models.Project{}, "id = ?", keep.ID))
	assert.Equal(t, int64(1), f.count(t, &models.Area{}, "project_id = ?", keep.ID))
	assert.Equal(t, int64(1), f.count(t, &models.Task{}, "project_id = ?", keep.ID))
	assert.Equal(t, int64(1), f.count(t, &models.Note{}, "project_id = ?", keep.ID))
	assert.Equal(t, int64(1), f.count(t, &models.Resource{}, "project_id = ?", keep.ID))
}

func TestDeleteProjectNotFound(t *testing.T) {
	f := newFixture(t)
	svc := newProjectService(f)

	err := svc.DeleteProject(testCtx, uuid.New())
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestDeleteProjectNotifiesSubscribers(t *testing.T) {
	f := newFixture(t)
	svc := newProjectService(f)
	p := f.seedProject(t, "p")

	sub := f.hub.NewSubscriber()
	f.hub.Add(sub, realtime.TopicProjects(f.userID))

	require.NoError(t, svc.DeleteProject(testCtx, p.ID))

	select {
	case topic := <-sub.C():
		assert.Equal(t, realtime.TopicProjects(f.userID), topic)
	default:
		t.Fatal("expected a projects notification after delete")
	}
}

func TestCreateProjectRejectsBlankName(t *testing.T) {
	f := newFixture(t)
	svc := newProjectService(f)

	_, err := svc.CreateProject(testCtx, f.userID, &CreateProjectInput{Name: "   "})
	assert.True(t, appErr.IsCode(err, appErr.CodeInvalid))
}

func TestListProjectsScopedToUser(t *testing.T) {
	f := newFixture(t)
	svc := newProjectService(f)

	f.seedProject(t, "mine")
	other := &models.Project{UserID: uuid.New(), Name: "theirs"}
	require.NoError(t, f.db.Create(other).Error)

	got, err := svc.ListProjects(testCtx, f.userID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "mine", got[0].Name)
}

func TestUpdateProjectPartialPatch(t *testing.T) {
	f := newFixture(t)
	svc := newProjectService(f)
	p := f.seedProject(t, "name")
	require.NoError(t, f.db.Model(p).Update("description", "original").Error)

	desc := "changed"
	got, err := svc.UpdateProject(testCtx, p.ID, &UpdateProjectInput{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "name", got.Name)
	assert.Equal(t, "changed", got.Description)
}
