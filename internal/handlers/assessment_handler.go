package handlers

import (
	"net/http"

	"binakata/internal/service"
)

// AssessmentHandler handles screening assessments
type AssessmentHandler struct {
	assessmentService *service.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessmentService *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService}
}

// Start creates an assessment with the screening battery
func (h *AssessmentHandler) Start(w http.ResponseWriter, r *http.Request) {
	var in service.StartInput
	if !decodeJSON(w, r, &in) {
		return
	}

	result, err := h.assessmentService.Start(r.Context(), GetUserIDFromContext(r.Context()), in)
	if err != nil {
		handleServiceError(w, err, "Failed to start assessment")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Submit grades the answers and scores the assessment
func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var in service.SubmitInput
	if !decodeJSON(w, r, &in) {
		return
	}

	result, err := h.assessmentService.Submit(r.Context(), GetUserIDFromContext(r.Context()), in)
	if err != nil {
		handleServiceError(w, err, "Failed to submit assessment")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Get returns an assessment with its items
func (h *AssessmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	assessment, err := h.assessmentService.GetAssessment(r.Context(), GetUserIDFromContext(r.Context()), id)
	if err != nil {
		handleServiceError(w, err, "Failed to load assessment")
		return
	}
	respondJSON(w, http.StatusOK, assessment)
}
