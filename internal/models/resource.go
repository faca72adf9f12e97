package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resource is a titled link/reference record with the same optional-Area
// shape as Note.
type Resource struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id" validate:"required"`
	ProjectID   uuid.UUID  `gorm:"type:uuid;index;not null" json:"project_id" validate:"required"`
	AreaID      *uuid.UUID `gorm:"type:uuid;index" json:"area_id,omitempty"`
	Title       string     `gorm:"not null" json:"title" validate:"required"`
	URL         string     `gorm:"type:text" json:"url,omitempty"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (r *Resource) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
