package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ashokvas/flowspace/internal/api/middleware"
	"github.com/ashokvas/flowspace/internal/api/types"
	"github.com/ashokvas/flowspace/internal/services"
)

type AreasHandler struct {
	areas services.AreaService
}

func NewAreasHandler(areas services.AreaService) *AreasHandler {
	return &AreasHandler{areas: areas}
}

// ListByProject serves GET /projects/{id}/areas.
func (h *AreasHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	items, err := h.areas.ListAreas(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, items)
}

func (h *AreasHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.AreaCreateRequest
	if !decodeValid(w, r, &req) {
		return
	}
	projectID, _ := uuid.Parse(req.ProjectID)

	a, err := h.areas.CreateArea(r.Context(), middleware.GetUserID(r.Context()), &services.CreateAreaInput{
		ProjectID:   projectID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, a)
}

func (h *AreasHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req types.AreaUpdateRequest
	if !decodeValid(w, r, &req) {
		return
	}

	a, err := h.areas.UpdateArea(r.Context(), id, &services.UpdateAreaInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, a)
}

// Delete cascades: the area's tasks, notes, and resources go with it.
// Project-level records survive.
func (h *AreasHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := h.areas.DeleteArea(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"deleted": id})
}
