package handlers

import (
	"net/http"

	"binakata/internal/service"
)

// ProgressHandler records learning-module events
type ProgressHandler struct {
	progressService *service.ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

func (h *ProgressHandler) Letters(w http.ResponseWriter, r *http.Request) {
	var in service.LetterInput
	if !decodeJSON(w, r, &in) {
		return
	}
	update, err := h.progressService.RecordLetter(r.Context(), GetUserIDFromContext(r.Context()), in)
	if err != nil {
		handleServiceError(w, err, "Failed to record letter progress")
		return
	}
	respondJSON(w, http.StatusOK, update)
}

func (h *ProgressHandler) Spelling(w http.ResponseWriter, r *http.Request) {
	var in service.SpellingInput
	if !decodeJSON(w, r, &in) {
		return
	}
	update, err := h.progressService.RecordSpelling(r.Context(), GetUserIDFromContext(r.Context()), in)
	if err != nil {
		handleServiceError(w, err, "Failed to record spelling progress")
		return
	}
	respondJSON(w, http.StatusOK, update)
}

func (h *ProgressHandler) Words(w http.ResponseWriter, r *http.Request) {
	var in service.WordInput
	if !decodeJSON(w, r, &in) {
		return
	}
	update, err := h.progressService.RecordWord(r.Context(), GetUserIDFromContext(r.Context()), in)
	if err != nil {
		handleServiceError(w, err, "Failed to record word progress")
		return
	}
	respondJSON(w, http.StatusOK, update)
}
