package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Attachment is file metadata appended to a Note. StorageID references a blob
// in external storage; entries are append-only until individually removed.
type Attachment struct {
	StorageID  string `json:"storage_id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Size       int64  `json:"size"`
	UploadedAt int64  `json:"uploaded_at"`
}

// Note is a free-text record with optional file attachments. AreaID is
// optional: a Note attaches either to a Project directly or to one of its
// Areas.
type Note struct {
	ID          uuid.UUID                       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID                       `gorm:"type:uuid;index;not null" json:"user_id" validate:"required"`
	ProjectID   uuid.UUID                       `gorm:"type:uuid;index;not null" json:"project_id" validate:"required"`
	AreaID      *uuid.UUID                      `gorm:"type:uuid;index" json:"area_id,omitempty"`
	Title       string                          `gorm:"not null" json:"title" validate:"required"`
	Content     string                          `gorm:"type:text" json:"content,omitempty"`
	Attachments datatypes.JSONSlice[Attachment] `json:"attachments,omitempty"`
	CreatedAt   time.Time                       `json:"created_at"`
	UpdatedAt   time.Time                       `json:"updated_at"`
}

func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
