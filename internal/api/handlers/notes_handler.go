package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ashokvas/flowspace/internal/api/middleware"
	"github.com/ashokvas/flowspace/internal/api/types"
	"github.com/ashokvas/flowspace/internal/services"
)

type NotesHandler struct {
	notes       services.NoteService
	attachments services.AttachmentService
}

func NewNotesHandler(notes services.NoteService, attachments services.AttachmentService) *NotesHandler {
	return &NotesHandler{notes: notes, attachments: attachments}
}

// ListByProject serves GET /projects/{id}/notes.
func (h *NotesHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	items, err := h.notes.ListNotesByProject(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, items)
}

// ListByArea serves GET /areas/{id}/notes.
func (h *NotesHandler) ListByArea(w http.ResponseWriter, r *http.Request) {
	areaID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	items, err := h.notes.ListNotesByArea(r.Context(), areaID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, items)
}

func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.NoteCreateRequest
	if !decodeValid(w, r, &req) {
		return
	}
	projectID, _ := uuid.Parse(req.ProjectID)
	areaID, err := optionalUUID(req.AreaID)
	if err != nil {
		writeError(w, err)
		return
	}

	n, err := h.notes.CreateNote(r.Context(), middleware.GetUserID(r.Context()), &services.CreateNoteInput{
		ProjectID: projectID,
		AreaID:    areaID,
		Title:     req.Title,
		Content:   req.Content,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, n)
}

func (h *NotesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req types.NoteUpdateRequest
	if !decodeValid(w, r, &req) {
		return
	}

	n, err := h.notes.UpdateNote(r.Context(), id, &services.UpdateNoteInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, n)
}

func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := h.notes.DeleteNote(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"deleted": id})
}

// AddAttachment serves POST /notes/{id}/attachments. The blob must already
// be uploaded; this only records the metadata.
func (h *NotesHandler) AddAttachment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req types.AttachmentAddRequest
	if !decodeValid(w, r, &req) {
		return
	}

	n, err := h.attachments.AttachFile(r.Context(), id, &services.AttachFileInput{
		StorageID: req.StorageID,
		Name:      req.Name,
		Type:      req.Type,
		Size:      req.Size,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, n)
}

// RemoveAttachment serves DELETE /notes/{id}/attachments/{ref}.
func (h *NotesHandler) RemoveAttachment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	ref := chi.URLParam(r, "ref")
	n, err := h.attachments.RemoveAttachment(r.Context(), id, ref)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, n)
}
