package models

import "time"

// ItemType identifies how a screening item is graded
type ItemType string

const (
	ItemLetter  ItemType = "letter"
	ItemWord    ItemType = "word"
	ItemArrange ItemType = "arrange"
)

// Assessment is one screening run for a child
type Assessment struct {
	ID             int64            `db:"id" json:"id"`
	ChildID        int64            `db:"child_id" json:"child_id"`
	StartedAt      time.Time        `db:"started_at" json:"started_at"`
	SubmittedAt    *time.Time       `db:"submitted_at" json:"submitted_at"`
	RiskScore      *float64         `db:"risk_score" json:"risk_score"`
	Recommendation *string          `db:"recommendation" json:"recommendation"`
	Items          []AssessmentItem `db:"-" json:"items,omitempty"`
}

// IsSubmitted reports whether the assessment has already been scored
func (a *Assessment) IsSubmitted() bool {
	return a.SubmittedAt != nil
}

// AssessmentItem is a single prompt within an assessment. Position defines
// presentation and grading order.
type AssessmentItem struct {
	ID           int64    `db:"id" json:"id"`
	AssessmentID int64    `db:"assessment_id" json:"assessment_id"`
	ItemType     ItemType `db:"item_type" json:"type"`
	Prompt       string   `db:"prompt" json:"prompt"`
	Position     int      `db:"position" json:"position"`
	Answer       *string  `db:"answer" json:"answer"`
	IsCorrect    *bool    `db:"is_correct" json:"is_correct"`
}
