// Package report exports assessments and learning progress to an Excel workbook.
package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"binakata/internal/models"
	"binakata/internal/repository"
	"binakata/internal/scoring"
)

const (
	AssessmentsSheet = "Assessments"
	ProgressSheet    = "Progress"

	timeLayout = "2006-01-02 15:04"
)

// AssessmentLister loads assessment rows for export
type AssessmentLister interface {
	ListForReport(ctx context.Context, parentID int64) ([]repository.AssessmentReportRow, error)
}

// ProgressLister loads learning progress rows for export
type ProgressLister interface {
	ListAllLearning(ctx context.Context, parentID int64) ([]models.LearningProgress, error)
}

var (
	assessmentHeader = []interface{}{"Assessment", "Parent", "Child", "Started", "Submitted", "Risk score", "Tier", "Recommendation"}
	progressHeader   = []interface{}{"Child", "Module", "Completed", "Level", "Streak days", "Sessions", "Last session"}
)

// Summary counts the rows written to each sheet
type Summary struct {
	Assessments int
	Progress    int
}

// Build creates a workbook for parentID, or for every parent when parentID is 0
func Build(ctx context.Context, assessments AssessmentLister, progress ProgressLister, parentID int64, loc *time.Location) (*excelize.File, Summary, error) {
	if loc == nil {
		loc = time.Local
	}
	var summary Summary

	assessmentRows, err := assessments.ListForReport(ctx, parentID)
	if err != nil {
		return nil, summary, err
	}
	progressRows, err := progress.ListAllLearning(ctx, parentID)
	if err != nil {
		return nil, summary, err
	}

	f := excelize.NewFile()
	// NewFile starts with Sheet1; rename it rather than leave an empty sheet behind
	if err := f.SetSheetName("Sheet1", AssessmentsSheet); err != nil {
		f.Close()
		return nil, summary, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(ProgressSheet); err != nil {
		f.Close()
		return nil, summary, fmt.Errorf("failed to create sheet: %w", err)
	}

	if err := writeRow(f, AssessmentsSheet, 1, assessmentHeader); err != nil {
		f.Close()
		return nil, summary, err
	}
	for i, row := range assessmentRows {
		if err := writeRow(f, AssessmentsSheet, i+2, assessmentValues(row, loc)); err != nil {
			f.Close()
			return nil, summary, err
		}
	}
	summary.Assessments = len(assessmentRows)

	if err := writeRow(f, ProgressSheet, 1, progressHeader); err != nil {
		f.Close()
		return nil, summary, err
	}
	for i, row := range progressRows {
		if err := writeRow(f, ProgressSheet, i+2, progressValues(row, loc)); err != nil {
			f.Close()
			return nil, summary, err
		}
	}
	summary.Progress = len(progressRows)

	return f, summary, nil
}

// Write builds the workbook and writes it to w
func Write(ctx context.Context, w io.Writer, assessments AssessmentLister, progress ProgressLister, parentID int64, loc *time.Location) (Summary, error) {
	f, summary, err := Build(ctx, assessments, progress, parentID, loc)
	if err != nil {
		return summary, err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return summary, fmt.Errorf("failed to write workbook: %w", err)
	}
	return summary, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func assessmentValues(row repository.AssessmentReportRow, loc *time.Location) []interface{} {
	values := []interface{}{row.AssessmentID, row.ParentEmail, row.ChildName, formatTime(&row.StartedAt, loc), formatTime(row.SubmittedAt, loc), "", "", ""}
	if row.RiskScore != nil {
		values[5] = *row.RiskScore
		values[6] = string(scoring.TierFor(*row.RiskScore))
	}
	if row.Recommendation != nil {
		values[7] = *row.Recommendation
	}
	return values
}

func progressValues(row models.LearningProgress, loc *time.Location) []interface{} {
	return []interface{}{row.ChildID, string(row.ModuleType), row.TotalCompleted, row.CurrentLevel, row.StreakDays, row.TotalSessions, formatTime(row.LastSession, loc)}
}

func formatTime(t *time.Time, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.In(loc).Format(timeLayout)
}
