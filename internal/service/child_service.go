package service

import (
	"context"
	"strings"

	"binakata/internal/models"
	"binakata/internal/repository"
	"binakata/internal/validation"
)

// ChildService manages child profiles for a parent
type ChildService struct {
	childRepo *repository.ChildRepository
}

// NewChildService creates a new child service
func NewChildService(childRepo *repository.ChildRepository) *ChildService {
	return &ChildService{childRepo: childRepo}
}

// CreateChildInput is the body of a create-child request
type CreateChildInput struct {
	Name string `json:"name" validate:"notblank,max=100"`
	Age  *int   `json:"age" validate:"omitempty,gte=0,lte=18"`
}

// CreateChild adds a child profile for the parent
func (s *ChildService) CreateChild(ctx context.Context, parentID int64, in CreateChildInput) (*models.Child, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	return s.childRepo.CreateChild(ctx, parentID, strings.TrimSpace(in.Name), in.Age)
}

// ListChildren returns the parent's children, newest first
func (s *ChildService) ListChildren(ctx context.Context, parentID int64) ([]models.Child, error) {
	return s.childRepo.ListChildren(ctx, parentID)
}

// GetChild returns a child owned by the parent or ErrChildNotFound
func (s *ChildService) GetChild(ctx context.Context, parentID, childID int64) (*models.Child, error) {
	child, err := s.childRepo.GetChildForParent(ctx, childID, parentID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, ErrChildNotFound
	}
	return child, nil
}
