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

// AssessmentRepository handles database operations for screening assessments
type AssessmentRepository struct {
	db *database.DB
}

// NewAssessmentRepository creates a new assessment repository
func NewAssessmentRepository(db *database.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

// CreateAssessment inserts an assessment and its items in one transaction.
// Item positions are taken from the slice order.
func (r *AssessmentRepository) CreateAssessment(ctx context.Context, childID int64, items []models.AssessmentItem) (*models.Assessment, error) {
	now := time.Now().UTC()
	assessment := &models.Assessment{
		ChildID:   childID,
		StartedAt: now,
	}

	err := r.db.WithTx(ctx, func(tx *database.Tx) error {
		id, err := tx.ExecReturningID(ctx, "INSERT INTO assessments (child_id, started_at) VALUES (?, ?)", childID, now)
		if err != nil {
			return fmt.Errorf("failed to insert assessment: %w", err)
		}
		assessment.ID = id

		assessment.Items = make([]models.AssessmentItem, 0, len(items))
		for i, item := range items {
			item.AssessmentID = id
			item.Position = i
			itemID, err := tx.ExecReturningID(ctx, `
				INSERT INTO assessment_items (assessment_id, item_type, prompt, position)
				VALUES (?, ?, ?, ?)
			`, id, item.ItemType, item.Prompt, item.Position)
			if err != nil {
				return fmt.Errorf("failed to insert assessment item %d: %w", i, err)
			}
			item.ID = itemID
			assessment.Items = append(assessment.Items, item)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}

	return assessment, nil
}

// GetAssessment retrieves an assessment with its items ordered by position
func (r *AssessmentRepository) GetAssessment(ctx context.Context, id int64) (*models.Assessment, error) {
	assessment := &models.Assessment{}
	err := r.db.GetContext(ctx, assessment, `
		SELECT id, child_id, started_at, submitted_at, risk_score, recommendation
		FROM assessments
		WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	items, err := r.getItems(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	assessment.Items = items

	return assessment, nil
}

// GetAssessmentForParent retrieves an assessment only if its child belongs to parentID
func (r *AssessmentRepository) GetAssessmentForParent(ctx context.Context, id, parentID int64) (*models.Assessment, error) {
	var owner int64
	err := r.db.GetContext(ctx, &owner, `
		SELECT c.parent_id
		FROM assessments a
		JOIN children c ON c.id = a.child_id
		WHERE a.id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment owner: %w", err)
	}
	if owner != parentID {
		return nil, nil
	}

	return r.GetAssessment(ctx, id)
}

func (r *AssessmentRepository) getItems(ctx context.Context, q database.DBTX, assessmentID int64) ([]models.AssessmentItem, error) {
	items := []models.AssessmentItem{}
	err := q.SelectContext(ctx, &items, `
		SELECT id, assessment_id, item_type, prompt, position, answer, is_correct
		FROM assessment_items
		WHERE assessment_id = ?
		ORDER BY position, id
	`, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment items: %w", err)
	}
	return items, nil
}

// SaveResult stores graded answers and the risk outcome in one transaction.
// It reports false without writing anything when the assessment was already submitted.
func (r *AssessmentRepository) SaveResult(ctx context.Context, id int64, items []models.AssessmentItem, riskScore float64, recommendation string, submittedAt time.Time) (bool, error) {
	saved := false

	err := r.db.WithTx(ctx, func(tx *database.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE assessments
			SET submitted_at = ?, risk_score = ?, recommendation = ?
			WHERE id = ? AND submitted_at IS NULL
		`, submittedAt.UTC(), riskScore, recommendation, id)
		if err != nil {
			return fmt.Errorf("failed to update assessment: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if rows == 0 {
			return nil
		}

		for _, item := range items {
			if _, err := tx.ExecContext(ctx, `
				UPDATE assessment_items
				SET answer = ?, is_correct = ?
				WHERE id = ? AND assessment_id = ?
			`, item.Answer, item.IsCorrect, item.ID, id); err != nil {
				return fmt.Errorf("failed to update assessment item %d: %w", item.ID, err)
			}
		}

		saved = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return saved, nil
}

// DashboardSummary aggregates the submitted assessments of a parent's children
type DashboardSummary struct {
	TotalAssessments int      `db:"total_assessments" json:"total_assessments"`
	AverageRisk      *float64 `db:"average_risk" json:"average_risk"`
}

// GetDashboardSummary counts submitted assessments and averages their risk scores
func (r *AssessmentRepository) GetDashboardSummary(ctx context.Context, parentID int64) (*DashboardSummary, error) {
	summary := &DashboardSummary{}
	err := r.db.GetContext(ctx, summary, `
		SELECT COUNT(a.id) AS total_assessments, AVG(a.risk_score) AS average_risk
		FROM assessments a
		JOIN children c ON c.id = a.child_id
		WHERE c.parent_id = ? AND a.submitted_at IS NOT NULL
	`, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard summary: %w", err)
	}
	return summary, nil
}

// AssessmentReportRow is one submitted or pending assessment flattened for export
type AssessmentReportRow struct {
	AssessmentID   int64      `db:"assessment_id"`
	ParentEmail    string     `db:"parent_email"`
	ChildName      string     `db:"child_name"`
	StartedAt      time.Time  `db:"started_at"`
	SubmittedAt    *time.Time `db:"submitted_at"`
	RiskScore      *float64   `db:"risk_score"`
	Recommendation *string    `db:"recommendation"`
}

// ListForReport returns assessments joined with child and parent, optionally
// restricted to one parent. A parentID of 0 returns every parent's rows.
func (r *AssessmentRepository) ListForReport(ctx context.Context, parentID int64) ([]AssessmentReportRow, error) {
	query := `
		SELECT a.id AS assessment_id, u.email AS parent_email, c.name AS child_name,
			a.started_at, a.submitted_at, a.risk_score, a.recommendation
		FROM assessments a
		JOIN children c ON c.id = a.child_id
		JOIN users u ON u.id = c.parent_id
		WHERE ? = 0 OR u.id = ?
		ORDER BY u.email, c.name, a.started_at
	`
	rows := []AssessmentReportRow{}
	if err := r.db.SelectContext(ctx, &rows, query, parentID, parentID); err != nil {
		return nil, fmt.Errorf("failed to list assessments for report: %w", err)
	}
	return rows, nil
}
