package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"binakata/internal/database"
	"binakata/internal/models"
)

// ChildRepository handles database operations for child profiles
type ChildRepository struct {
	db *database.DB
}

// NewChildRepository creates a new child repository
func NewChildRepository(db *database.DB) *ChildRepository {
	return &ChildRepository{db: db}
}

// CreateChild adds a child profile to a parent account
func (r *ChildRepository) CreateChild(ctx context.Context, parentID int64, name string, age *int) (*models.Child, error) {
	now := time.Now().UTC()
	query := `
		INSERT INTO children (parent_id, name, age, created_at)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(ctx, query, parentID, name, age, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create child: %w", err)
	}

	return &models.Child{
		ID:        id,
		ParentID:  parentID,
		Name:      name,
		Age:       age,
		CreatedAt: now,
	}, nil
}

// ListChildren returns a parent's children, newest first
func (r *ChildRepository) ListChildren(ctx context.Context, parentID int64) ([]models.Child, error) {
	query := `
		SELECT id, parent_id, name, age, created_at
		FROM children
		WHERE parent_id = ?
		ORDER BY created_at DESC, id DESC
	`
	children := []models.Child{}
	if err := r.db.SelectContext(ctx, &children, query, parentID); err != nil {
		return nil, fmt.Errorf("failed to list children: %w", err)
	}
	return children, nil
}

// GetChild retrieves a child by ID
func (r *ChildRepository) GetChild(ctx context.Context, id int64) (*models.Child, error) {
	query := `
		SELECT id, parent_id, name, age, created_at
		FROM children
		WHERE id = ?
	`
	child := &models.Child{}
	err := r.db.GetContext(ctx, child, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	return child, nil
}

// GetChildForParent retrieves a child only if it belongs to parentID
func (r *ChildRepository) GetChildForParent(ctx context.Context, id, parentID int64) (*models.Child, error) {
	child, err := r.GetChild(ctx, id)
	if err != nil || child == nil {
		return nil, err
	}
	if child.ParentID != parentID {
		return nil, nil
	}
	return child, nil
}
