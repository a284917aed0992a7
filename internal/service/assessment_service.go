package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"binakata/internal/models"
	"binakata/internal/repository"
	"binakata/internal/scoring"
	"binakata/internal/validation"
)

// RiskScorer is the scoring orchestrator as seen by the assessment service
type RiskScorer interface {
	ScoreWithSource(ctx context.Context, f scoring.Features) (scoring.Result, scoring.Source)
}

// RiskNotifier is told about high-risk results
type RiskNotifier interface {
	SendRiskAlert(ctx context.Context, toEmail, childName string, assessmentID int64, riskScore float64, recommendation string) error
}

// AssessmentService runs screening assessments from start to scored result
type AssessmentService struct {
	assessmentRepo *repository.AssessmentRepository
	childRepo      *repository.ChildRepository
	userRepo       *repository.UserRepository
	scorer         RiskScorer
	notifier       RiskNotifier
	logger         *slog.Logger
	now            func() time.Time

	notifications sync.WaitGroup
}

// NewAssessmentService creates a new assessment service. notifier may be nil.
func NewAssessmentService(
	assessmentRepo *repository.AssessmentRepository,
	childRepo *repository.ChildRepository,
	userRepo *repository.UserRepository,
	scorer RiskScorer,
	notifier RiskNotifier,
	logger *slog.Logger,
) *AssessmentService {
	return &AssessmentService{
		assessmentRepo: assessmentRepo,
		childRepo:      childRepo,
		userRepo:       userRepo,
		scorer:         scorer,
		notifier:       notifier,
		logger:         logger,
		now:            time.Now,
	}
}

// StartInput is the body of a start-assessment request
type StartInput struct {
	ChildID int64 `json:"child_id" validate:"required,gt=0"`
}

// StartResult lists the items the child will be shown
type StartResult struct {
	AssessmentID int64                   `json:"assessment_id"`
	Items        []models.AssessmentItem `json:"items"`
}

// Start creates an assessment with the screening battery for a child the parent owns
func (s *AssessmentService) Start(ctx context.Context, parentID int64, in StartInput) (*StartResult, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	child, err := s.childRepo.GetChildForParent(ctx, in.ChildID, parentID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, ErrChildNotFound
	}

	assessment, err := s.assessmentRepo.CreateAssessment(ctx, child.ID, ScreeningBattery())
	if err != nil {
		return nil, err
	}

	s.logger.Info("assessment started", "assessment_id", assessment.ID, "child_id", child.ID)

	return &StartResult{
		AssessmentID: assessment.ID,
		Items:        assessment.Items,
	}, nil
}

// Answer is one submitted response. Answers are matched to items by position;
// ID is informational.
type Answer struct {
	ID     int64  `json:"id"`
	Answer string `json:"answer"`
}

// SubmitInput is the body of a submit-assessment request
type SubmitInput struct {
	AssessmentID int64                 `json:"assessment_id" validate:"required,gt=0"`
	Answers      []Answer              `json:"answers"`
	Metrics      *scoring.Metrics      `json:"metrics,omitempty"`
	Interactions []scoring.Interaction `json:"interactions,omitempty" validate:"dive"`
}

// SubmitResult is the scored outcome of an assessment
type SubmitResult struct {
	ID             int64   `json:"id"`
	RiskScore      float64 `json:"risk_score"`
	Recommendation string  `json:"recommendation"`
}

// Submit grades the answers, scores the assessment and stores the result.
// Scoring failures never surface. A second submission returns ErrAssessmentSubmitted.
func (s *AssessmentService) Submit(ctx context.Context, parentID int64, in SubmitInput) (*SubmitResult, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	assessment, err := s.assessmentRepo.GetAssessmentForParent(ctx, in.AssessmentID, parentID)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		return nil, ErrAssessmentNotFound
	}
	if assessment.IsSubmitted() {
		return nil, ErrAssessmentSubmitted
	}

	graded := gradeItems(assessment.Items, in.Answers)
	features := scoring.Aggregate(graded, sessionMetrics(in))

	result, source := s.scorer.ScoreWithSource(ctx, features)
	s.logger.Info("assessment scored",
		"assessment_id", assessment.ID,
		"source", source,
		"risk_score", result.RiskScore,
		"tier", scoring.TierFor(result.RiskScore),
	)

	saved, err := s.assessmentRepo.SaveResult(ctx, assessment.ID, assessment.Items, result.RiskScore, result.Recommendation, s.now())
	if err != nil {
		return nil, err
	}
	if !saved {
		return nil, ErrAssessmentSubmitted
	}

	if scoring.TierFor(result.RiskScore) == scoring.TierHigh {
		s.notifyHighRisk(assessment.ChildID, assessment.ID, result)
	}

	return &SubmitResult{
		ID:             assessment.ID,
		RiskScore:      result.RiskScore,
		Recommendation: result.Recommendation,
	}, nil
}

// GetAssessment returns an assessment with its items if the parent owns it
func (s *AssessmentService) GetAssessment(ctx context.Context, parentID, id int64) (*models.Assessment, error) {
	assessment, err := s.assessmentRepo.GetAssessmentForParent(ctx, id, parentID)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		return nil, ErrAssessmentNotFound
	}
	return assessment, nil
}

// Wait blocks until pending high-risk notifications have finished
func (s *AssessmentService) Wait() {
	s.notifications.Wait()
}

// gradeItems grades items in position order against answers[i], filling in
// Answer and IsCorrect on each item. A missing answer is the empty string.
func gradeItems(items []models.AssessmentItem, answers []Answer) []scoring.GradedItem {
	graded := make([]scoring.GradedItem, 0, len(items))
	for i := range items {
		answer := ""
		if i < len(answers) {
			answer = answers[i].Answer
		}
		correct := scoring.Grade(items[i].ItemType, items[i].Prompt, answer)

		items[i].Answer = &answer
		items[i].IsCorrect = &correct
		graded = append(graded, scoring.GradedItem{Type: items[i].ItemType, Correct: correct})
	}
	return graded
}

// sessionMetrics prefers explicit metrics field by field over those derived from interactions
func sessionMetrics(in SubmitInput) scoring.Metrics {
	var explicit scoring.Metrics
	if in.Metrics != nil {
		explicit = *in.Metrics
	}
	if len(in.Interactions) == 0 {
		return explicit
	}
	return explicit.Merge(scoring.DeriveMetrics(in.Interactions))
}

func (s *AssessmentService) notifyHighRisk(childID, assessmentID int64, result scoring.Result) {
	if s.notifier == nil {
		return
	}

	s.notifications.Add(1)
	go func() {
		defer s.notifications.Done()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		child, err := s.childRepo.GetChild(ctx, childID)
		if err != nil || child == nil {
			s.logger.Warn("risk alert skipped: child lookup failed", "child_id", childID, "error", err)
			return
		}
		parent, err := s.userRepo.GetUserByID(ctx, child.ParentID)
		if err != nil || parent == nil {
			s.logger.Warn("risk alert skipped: parent lookup failed", "parent_id", child.ParentID, "error", err)
			return
		}

		if err := s.notifier.SendRiskAlert(ctx, parent.Email, child.Name, assessmentID, result.RiskScore, result.Recommendation); err != nil {
			s.logger.Warn("risk alert failed", "assessment_id", assessmentID, "error", err)
		}
	}()
}
