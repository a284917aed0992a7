package handlers

import (
	"net/http"

	"binakata/internal/service"
)

// DashboardHandler serves the parent dashboard summary
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary returns the count and average risk of submitted assessments
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardService.GetSummary(r.Context(), GetUserIDFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, err, "Failed to load dashboard summary")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
