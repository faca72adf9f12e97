package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ashokvas/flowspace/internal/api/middleware"
	"github.com/ashokvas/flowspace/internal/api/types"
	"github.com/ashokvas/flowspace/internal/services"
)

type ResourcesHandler struct {
	resources services.ResourceService
}

func NewResourcesHandler(resources services.ResourceService) *ResourcesHandler {
	return &ResourcesHandler{resources: resources}
}

// ListByProject serves GET /projects/{id}/resources.
func (h *ResourcesHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	items, err := h.resources.ListResourcesByProject(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, items)
}

// ListByArea serves GET /areas/{id}/resources.
func (h *ResourcesHandler) ListByArea(w http.ResponseWriter, r *http.Request) {
	areaID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	items, err := h.resources.ListResourcesByArea(r.Context(), areaID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, items)
}

func (h *ResourcesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.ResourceCreateRequest
	if !decodeValid(w, r, &req) {
		return
	}
	projectID, _ := uuid.Parse(req.ProjectID)
	areaID, err := optionalUUID(req.AreaID)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := h.resources.CreateResource(r.Context(), middleware.GetUserID(r.Context()), &services.CreateResourceInput{
		ProjectID:   projectID,
		AreaID:      areaID,
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, res)
}

func (h *ResourcesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req types.ResourceUpdateRequest
	if !decodeValid(w, r, &req) {
		return
	}

	res, err := h.resources.UpdateResource(r.Context(), id, &services.UpdateResourceInput{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, res)
}

func (h *ResourcesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := h.resources.DeleteResource(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"deleted": id})
}
