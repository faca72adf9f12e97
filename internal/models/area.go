package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Area groups related Tasks, Notes, and Resources within a Project.
// ProjectID is set at creation and never repointed.
type Area struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id" validate:"required"`
	ProjectID   uuid.UUID `gorm:"type:uuid;index;not null" json:"project_id" validate:"required"`
	Name        string    `gorm:"not null" json:"name" validate:"required"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (a *Area) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
