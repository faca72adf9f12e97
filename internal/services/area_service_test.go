package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashokvas/flowspace/internal/models"
	"github.com/ashokvas/flowspace/internal/repository"
	appErr "github.com/ashokvas/flowspace/pkg/errors"
)

func newAreaService(f *fixture) AreaService {
	return NewAreaService(f.db, repository.NewAreaRepository(f.db), repository.NewProjectRepository(f.db), f.hub)
}

func TestDeleteAreaCascades(t *testing.T) {
	f := newFixture(t)
	svc := newAreaService(f)

	p := f.seedProject(t, "p")
	area := f.seedArea(t, p.ID, "target")
	other := f.seedArea(t, p.ID, "other")

	for i := 0; i < 3; i++ {
		f.seedTask(t, p.ID, area.ID, "t")
	}
	f.seedNote(t, p.ID, &area.ID, "n1")
	f.seedNote(t, p.ID, &area.ID, "n2")
	f.seedResource(t, p.ID, &area.ID, "r")

	// Records outside the area must survive.
	f.seedTask(t, p.ID, other.ID, "other task")
	projectNote := f.seedNote(t, p.ID, nil, "project note")
	projectResource := f.seedResource(t, p.ID, nil, "project resource")

	require.NoError(t, svc.DeleteArea(testCtx, area.ID))

	// Nothing references the deleted area anymore.
	assert.Zero(t, f.count(t, &models.Task{}, "area_id = ?", area.ID))
	assert.Zero(t, f.count(t, &models.Note{}, "area_id = ?", area.ID))
	assert.Zero(t, f.count(t, &models.Resource{}, "area_id = ?", area.ID))
	assert.Zero(t, f.count(t, &models.Area{}, "id = ?", area.ID))

	// Project-level and sibling-area records are unaffected.
	assert.Equal(t, int64(1), f.count(t, &models.Area{}, "id = ?", other.ID))
	assert.Equal(t, int64(1), f.count(t, &models.Task{}, "area_id = ?", other.ID))
	assert.Equal(t, int64(1), f.count(t, &models.Note{}, "id = ?", projectNote.ID))
	assert.Equal(t, int64(1), f.count(t, &models.Resource{}, "id = ?", projectResource.ID))
}

func TestDeleteAreaNotFound(t *testing.T) {
	f := newFixture(t)
	svc := newAreaService(f)

	err := svc.DeleteArea(testCtx, uuid.New())
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestCreateAreaRequiresProject(t *testing.T) {
	f := newFixture(t)
	svc := newAreaService(f)

	_, err := svc.CreateArea(testCtx, f.userID, &CreateAreaInput{ProjectID: uuid.New(), Name: "a"})
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestCreateAreaRejectsBlankName(t *testing.T) {
	f := newFixture(t)
	svc := newAreaService(f)
	p := f.seedProject(t, "p")

	for _, name := range []string{"", "   ", "\t"} {
		_, err := svc.CreateArea(testCtx, f.userID, &CreateAreaInput{ProjectID: p.ID, Name: name})
		assert.True(t, appErr.IsCode(err, appErr.CodeInvalid), "name %q", name)
	}
}

func TestUpdateAreaPatchesOnlyGivenFields(t *testing.T) {
	f := newFixture(t)
	svc := newAreaService(f)
	p := f.seedProject(t, "p")
	a := f.seedArea(t, p.ID, "before")
	require.NoError(t, f.db.Model(a).Update("description", "keep me").Error)

	name := "after"
	got, err := svc.UpdateArea(testCtx, a.ID, &UpdateAreaInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "after", got.Name)
	assert.Equal(t, "keep me", got.Description)
}
