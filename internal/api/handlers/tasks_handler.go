package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ashokvas/flowspace/internal/api/middleware"
	"github.com/ashokvas/flowspace/internal/api/types"
	"github.com/ashokvas/flowspace/internal/services"
	"github.com/ashokvas/flowspace/internal/taskfilter"
)

type TasksHandler struct {
	tasks services.TaskService
}

func NewTasksHandler(tasks services.TaskService) *TasksHandler {
	return &TasksHandler{tasks: tasks}
}

// List serves GET /tasks. Filter query parameters: priority, status, due,
// project, tag, archived. Absent parameters are wildcards; filtering happens
// server-side so every client sees the same classification.
func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	spec := taskfilter.Spec{
		Priority:  q.Get("priority"),
		Status:    q.Get("status"),
		Due:       q.Get("due"),
		ProjectID: q.Get("project"),
		Tag:       q.Get("tag"),
	}
	showArchived := q.Get("archived") == "true"

	listing, err := h.tasks.ListTasksForUser(r.Context(), middleware.GetUserID(r.Context()), spec, showArchived)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, listing)
}

// ListByArea serves GET /areas/{id}/tasks.
func (h *TasksHandler) ListByArea(w http.ResponseWriter, r *http.Request) {
	areaID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	items, err := h.tasks.ListTasksByArea(r.Context(), areaID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, items)
}

func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.TaskCreateRequest
	if !decodeValid(w, r, &req) {
		return
	}
	projectID, _ := uuid.Parse(req.ProjectID)
	areaID, _ := uuid.Parse(req.AreaID)

	t, err := h.tasks.CreateTask(r.Context(), middleware.GetUserID(r.Context()), &services.CreateTaskInput{
		ProjectID: projectID,
		AreaID:    areaID,
		Title:     req.Title,
		Notes:     req.Notes,
		Status:    req.Status,
		Priority:  req.Priority,
		DueDate:   req.DueDate,
		Tags:      req.Tags,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, t)
}

func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req types.TaskUpdateRequest
	if !decodeValid(w, r, &req) {
		return
	}

	t, err := h.tasks.UpdateTask(r.Context(), id, &services.UpdateTaskInput{
		Title:    req.Title,
		Notes:    req.Notes,
		Status:   req.Status,
		Priority: req.Priority,
		DueDate:  req.DueDate,
		Tags:     req.Tags,
		Archived: req.Archived,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, t)
}

// Cycle serves POST /tasks/{id}/cycle: todo -> inprog -> done -> todo.
func (h *TasksHandler) Cycle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	t, err := h.tasks.CycleTaskStatus(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, t)
}

func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := h.tasks.DeleteTask(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"deleted": id})
}
