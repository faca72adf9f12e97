package types

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ProjectCreateRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type ProjectUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type AreaCreateRequest struct {
	ProjectID   string `json:"project_id" validate:"required,uuid4"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type AreaUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type TaskCreateRequest struct {
	ProjectID string   `json:"project_id" validate:"required,uuid4"`
	AreaID    string   `json:"area_id" validate:"required,uuid4"`
	Title     string   `json:"title" validate:"required"`
	Notes     string   `json:"notes"`
	Status    string   `json:"status" validate:"omitempty,oneof=todo inprog done"`
	Priority  string   `json:"priority" validate:"omitempty,oneof=high med low"`
	DueDate   string   `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Tags      []string `json:"tags"`
}

type TaskUpdateRequest struct {
	Title    *string   `json:"title"`
	Notes    *string   `json:"notes"`
	Status   *string   `json:"status" validate:"omitempty,oneof=todo inprog done"`
	Priority *string   `json:"priority" validate:"omitempty,oneof=high med low"`
	DueDate  *string   `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Tags     *[]string `json:"tags"`
	Archived *bool     `json:"archived"`
}

type NoteCreateRequest struct {
	ProjectID string  `json:"project_id" validate:"required,uuid4"`
	AreaID    *string `json:"area_id" validate:"omitempty,uuid4"`
	Title     string  `json:"title" validate:"required"`
	Content   string  `json:"content"`
}

type NoteUpdateRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type ResourceCreateRequest struct {
	ProjectID   string  `json:"project_id" validate:"required,uuid4"`
	AreaID      *string `json:"area_id" validate:"omitempty,uuid4"`
	Title       string  `json:"title" validate:"required"`
	URL         string  `json:"url"`
	Description string  `json:"description"`
}

type ResourceUpdateRequest struct {
	Title       *string `json:"title"`
	URL         *string `json:"url"`
	Description *string `json:"description"`
}

type AttachmentAddRequest struct {
	StorageID string `json:"storage_id" validate:"required,uuid4"`
	Name      string `json:"name" validate:"required"`
	Type      string `json:"type"`
	Size      int64  `json:"size"`
}
