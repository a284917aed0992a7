package report

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"binakata/internal/models"
	"binakata/internal/repository"
)

type stubAssessments struct {
	rows []repository.AssessmentReportRow
	err  error
}

func (s stubAssessments) ListForReport(context.Context, int64) ([]repository.AssessmentReportRow, error) {
	return s.rows, s.err
}

type stubProgress struct {
	rows []models.LearningProgress
}

func (s stubProgress) ListAllLearning(context.Context, int64) ([]models.LearningProgress, error) {
	return s.rows, nil
}

func TestWriteWorkbook(t *testing.T) {
	started := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	submitted := started.Add(10 * time.Minute)
	risk := 0.82
	rec := "Risiko tinggi"

	assessments := stubAssessments{rows: []repository.AssessmentReportRow{
		{AssessmentID: 1, ParentEmail: "p@example.com", ChildName: "Sari", StartedAt: started, SubmittedAt: &submitted, RiskScore: &risk, Recommendation: &rec},
		{AssessmentID: 2, ParentEmail: "p@example.com", ChildName: "Sari", StartedAt: started},
	}}
	progress := stubProgress{rows: []models.LearningProgress{
		{ChildID: 5, ModuleType: models.ModuleLetters, TotalCompleted: 3, StreakDays: 2, TotalSessions: 4, LastSession: &submitted},
	}}

	var buf bytes.Buffer
	summary, err := Write(context.Background(), &buf, assessments, progress, 0, time.UTC)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if summary.Assessments != 2 || summary.Progress != 1 {
		t.Errorf("summary = %+v", summary)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 2 || sheets[0] != AssessmentsSheet || sheets[1] != ProgressSheet {
		t.Fatalf("sheets = %v", sheets)
	}

	rows, err := f.GetRows(AssessmentsSheet)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("assessment rows = %d, want header plus 2", len(rows))
	}
	if rows[1][3] != "2024-05-01 09:30" || rows[1][4] != "2024-05-01 09:40" || rows[1][6] != "high" || rows[1][7] != rec {
		t.Errorf("submitted row = %v", rows[1])
	}
	if len(rows[2]) > 4 && rows[2][4] != "" {
		t.Errorf("pending row has a submitted time: %v", rows[2])
	}

	progressRows, err := f.GetRows(ProgressSheet)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(progressRows) != 2 || progressRows[1][1] != "letters" || progressRows[1][5] != "4" {
		t.Errorf("progress rows = %v", progressRows)
	}
}

func TestBuildPropagatesErrors(t *testing.T) {
	boom := errors.New("db down")
	_, _, err := Build(context.Background(), stubAssessments{err: boom}, stubProgress{}, 0, time.UTC)
	if !errors.Is(err, boom) {
		t.Errorf("Build() error = %v, want %v", err, boom)
	}
}
