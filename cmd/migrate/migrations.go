package main

import (
	"gorm.io/gorm"

	"github.com/ashokvas/flowspace/internal/models"
)

// registerModels returns all models that need migration.
func registerModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Project{},
		&models.Area{},
		&models.Task{},
		&models.Note{},
		&models.Resource{},
	}
}

// runMigrations executes all database migrations.
func runMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(registerModels()...); err != nil {
		return err
	}
	return runCustomMigrations(db)
}

// runCustomMigrations handles schema changes AutoMigrate can't handle.
func runCustomMigrations(db *gorm.DB) error {
	migrations := []func(*gorm.DB) error{
		addTaskListingIndexes,
	}
	for _, m := range migrations {
		if err := m(db); err != nil {
			return err
		}
	}
	return nil
}

// addTaskListingIndexes backs the hot listing paths: the per-user task view
// and the per-area board.
func addTaskListingIndexes(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tasks_user_archived
		ON tasks(user_id, archived)
	`).Error; err != nil {
		return err
	}
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tasks_area_created
		ON tasks(area_id, created_at)
	`).Error
}
