package services

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ashokvas/flowspace/internal/models"
	"github.com/ashokvas/flowspace/internal/realtime"
	"github.com/ashokvas/flowspace/pkg/database"
	"github.com/ashokvas/flowspace/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("error", "console"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

// newTestDB opens an isolated in-memory database and migrates the schema.
// The DSN is named per test so parallel tests do not share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.OpenSQLite(dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Area{},
		&models.Task{},
		&models.Note{},
		&models.Resource{},
	))
	return db
}

// fixture wires a full service stack over one test database.
type fixture struct {
	db     *gorm.DB
	hub    *realtime.Hub
	userID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	return &fixture{db: newTestDB(t), hub: realtime.NewHub(), userID: uuid.New()}
}

func (f *fixture) seedProject(t *testing.T, name string) *models.Project {
	t.Helper()
	p := &models.Project{UserID: f.userID, Name: name}
	require.NoError(t, f.db.Create(p).Error)
	return p
}

func (f *fixture) seedArea(t *testing.T, projectID uuid.UUID, name string) *models.Area {
	t.Helper()
	a := &models.Area{UserID: f.userID, ProjectID: projectID, Name: name}
	require.NoError(t, f.db.Create(a).Error)
	return a
}

func (f *fixture) seedTask(t *testing.T, projectID, areaID uuid.UUID, title string) *models.Task {
	t.Helper()
	task := &models.Task{UserID: f.userID, ProjectID: projectID, AreaID: areaID, Title: title, Status: models.StatusTodo}
	require.NoError(t, f.db.Create(task).Error)
	return task
}

func (f *fixture) seedNote(t *testing.T, projectID uuid.UUID, areaID *uuid.UUID, title string) *models.Note {
	t.Helper()
	n := &models.Note{UserID: f.userID, ProjectID: projectID, AreaID: areaID, Title: title}
	require.NoError(t, f.db.Create(n).Error)
	return n
}

func (f *fixture) seedResource(t *testing.T, projectID uuid.UUID, areaID *uuid.UUID, title string) *models.Resource {
	t.Helper()
	r := &models.Resource{UserID: f.userID, ProjectID: projectID, AreaID: areaID, Title: title}
	require.NoError(t, f.db.Create(r).Error)
	return r
}

func (f *fixture) count(t *testing.T, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

var testCtx = context.Background()
