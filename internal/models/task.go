package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Task status values.
const (
	StatusTodo       = "todo"
	StatusInProgress = "inprog"
	StatusDone       = "done"
)

// Task priority values.
const (
	PriorityHigh = "high"
	PriorityMed  = "med"
	PriorityLow  = "low"
)

// Task is an actionable item. It belongs to exactly one Area and, through it,
// one Project; AreaID and ProjectID are both set at creation and never
// independently repointed.
type Task struct {
	ID        uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID                   `gorm:"type:uuid;index;not null" json:"user_id" validate:"required"`
	ProjectID uuid.UUID                   `gorm:"type:uuid;index;not null" json:"project_id" validate:"required"`
	AreaID    uuid.UUID                   `gorm:"type:uuid;index;not null" json:"area_id" validate:"required"`
	Title     string                      `gorm:"not null" json:"title" validate:"required"`
	Notes     string                      `gorm:"type:text" json:"notes,omitempty"`
	Status    string                      `gorm:"type:varchar(16);not null;default:todo" json:"status" validate:"required,oneof=todo inprog done"`
	Priority  string                      `gorm:"type:varchar(16)" json:"priority,omitempty" validate:"omitempty,oneof=high med low"`
	DueDate   string                      `gorm:"type:varchar(10)" json:"due_date,omitempty"`
	Tags      datatypes.JSONSlice[string] `json:"tags,omitempty"`
	Archived  bool                        `gorm:"not null;default:false;index" json:"archived"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
