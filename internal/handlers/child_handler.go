package handlers

import (
	"net/http"

	"binakata/internal/models"
	"binakata/internal/service"
)

// ChildHandler handles child profiles and their progress summaries
type ChildHandler struct {
	childService    *service.ChildService
	progressService *service.ProgressService
}

// NewChildHandler creates a new child handler
func NewChildHandler(childService *service.ChildService, progressService *service.ProgressService) *ChildHandler {
	return &ChildHandler{
		childService:    childService,
		progressService: progressService,
	}
}

// List returns the caller's children, newest first
func (h *ChildHandler) List(w http.ResponseWriter, r *http.Request) {
	children, err := h.childService.ListChildren(r.Context(), GetUserIDFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, err, "Failed to list children")
		return
	}
	if children == nil {
		children = []models.Child{}
	}
	respondJSON(w, http.StatusOK, children)
}

// Create adds a child profile
func (h *ChildHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateChildInput
	if !decodeJSON(w, r, &in) {
		return
	}

	child, err := h.childService.CreateChild(r.Context(), GetUserIDFromContext(r.Context()), in)
	if err != nil {
		handleServiceError(w, err, "Failed to create child")
		return
	}
	respondJSON(w, http.StatusOK, child)
}

// Progress returns the child's learning progress summary
func (h *ChildHandler) Progress(w http.ResponseWriter, r *http.Request) {
	childID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	summary, err := h.progressService.GetSummary(r.Context(), GetUserIDFromContext(r.Context()), childID)
	if err != nil {
		handleServiceError(w, err, "Failed to load progress summary")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
