package service

import (
	"context"

	"binakata/internal/repository"
)

// DashboardService reports aggregate screening figures for a parent
type DashboardService struct {
	assessmentRepo *repository.AssessmentRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(assessmentRepo *repository.AssessmentRepository) *DashboardService {
	return &DashboardService{assessmentRepo: assessmentRepo}
}

// GetSummary counts the parent's submitted assessments and averages their risk
func (s *DashboardService) GetSummary(ctx context.Context, parentID int64) (*repository.DashboardSummary, error) {
	return s.assessmentRepo.GetDashboardSummary(ctx, parentID)
}
