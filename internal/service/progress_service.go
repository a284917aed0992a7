package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"binakata/internal/database"
	"binakata/internal/models"
	"binakata/internal/progress"
	"binakata/internal/repository"
	"binakata/internal/validation"
)

// ProgressService records learning-module events and reports progress
type ProgressService struct {
	progressRepo *repository.ProgressRepository
	childRepo    *repository.ChildRepository
	locks        *progress.KeyedMutex
	location     *time.Location
	logger       *slog.Logger
	now          func() time.Time
}

// NewProgressService creates a new progress service. Streak days are
// counted as calendar days in loc.
func NewProgressService(progressRepo *repository.ProgressRepository, childRepo *repository.ChildRepository, loc *time.Location, logger *slog.Logger) *ProgressService {
	if loc == nil {
		loc = time.Local
	}
	return &ProgressService{
		progressRepo: progressRepo,
		childRepo:    childRepo,
		locks:        progress.NewKeyedMutex(),
		location:     loc,
		logger:       logger,
		now:          time.Now,
	}
}

// LetterInput is the body of a letters progress event
type LetterInput struct {
	ChildID   int64  `json:"childId" validate:"required,gt=0"`
	Letter    string `json:"letter" validate:"notblank,max=8"`
	IsCorrect bool   `json:"isCorrect"`
}

// SpellingInput is the body of a spelling progress event
type SpellingInput struct {
	ChildID    int64 `json:"childId" validate:"required,gt=0"`
	WordIndex  *int  `json:"wordIndex" validate:"required,gte=0"`
	Difficulty int   `json:"difficulty" validate:"required,gte=1"`
	IsCorrect  bool  `json:"isCorrect"`
	HintsUsed  int   `json:"hintsUsed" validate:"gte=0"`
}

// WordInput is the body of a word-arrangement progress event
type WordInput struct {
	ChildID      int64 `json:"childId" validate:"required,gt=0"`
	WordIndex    *int  `json:"wordIndex" validate:"required,gte=0"`
	Difficulty   int   `json:"difficulty" validate:"required,gte=1"`
	IsCorrect    bool  `json:"isCorrect"`
	HintsUsed    int   `json:"hintsUsed" validate:"gte=0"`
	ShufflesUsed int   `json:"shufflesUsed" validate:"gte=0"`
}

// ProgressUpdate is returned after a progress event
type ProgressUpdate struct {
	Success          bool                     `json:"success"`
	TotalCompleted   int                      `json:"totalCompleted"`
	Progress         *models.LearningProgress `json:"progress"`
	LetterProgress   *models.LetterProgress   `json:"letterProgress,omitempty"`
	SpellingProgress *models.SpellingProgress `json:"spellingProgress,omitempty"`
	WordProgress     *models.WordProgress     `json:"wordProgress,omitempty"`
}

// moduleStep updates the module's detail row and returns the new completed
// count and, if the event moves it, the current level.
type moduleStep func(q database.DBTX, now time.Time) (completed int, level *int, err error)

// RecordLetter stores a letter attempt and advances the letters module
func (s *ProgressService) RecordLetter(ctx context.Context, parentID int64, in LetterInput) (*ProgressUpdate, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	letter := strings.ToUpper(strings.TrimSpace(in.Letter))
	update := &ProgressUpdate{}

	err := s.record(ctx, parentID, in.ChildID, models.ModuleLetters, update, func(q database.DBTX, now time.Time) (int, *int, error) {
		p, err := s.progressRepo.GetLetterForUpdate(ctx, q, in.ChildID, letter)
		if err != nil {
			return 0, nil, err
		}
		if p == nil {
			p = &models.LetterProgress{ChildID: in.ChildID, Letter: letter}
		}
		applyAttempt(&p.CorrectCount, &p.IncorrectCount, in.IsCorrect)
		p.IsCompleted = in.IsCorrect
		p.LastAttempt = &now
		if err := s.progressRepo.SaveLetter(ctx, q, p); err != nil {
			return 0, nil, err
		}
		update.LetterProgress = p

		completed, err := s.progressRepo.CountCompletedLetters(ctx, q, in.ChildID)
		return completed, nil, err
	})
	if err != nil {
		return nil, err
	}
	return update, nil
}

// RecordSpelling stores a spelling attempt and advances the spelling module
func (s *ProgressService) RecordSpelling(ctx context.Context, parentID int64, in SpellingInput) (*ProgressUpdate, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	wordIndex := *in.WordIndex
	update := &ProgressUpdate{}

	err := s.record(ctx, parentID, in.ChildID, models.ModuleSpelling, update, func(q database.DBTX, now time.Time) (int, *int, error) {
		p, err := s.progressRepo.GetSpellingForUpdate(ctx, q, in.ChildID, wordIndex, in.Difficulty)
		if err != nil {
			return 0, nil, err
		}
		if p == nil {
			p = &models.SpellingProgress{ChildID: in.ChildID, WordIndex: wordIndex, Difficulty: in.Difficulty}
		}
		applyAttempt(&p.CorrectCount, &p.IncorrectCount, in.IsCorrect)
		p.HintsUsed += in.HintsUsed
		p.IsCompleted = in.IsCorrect
		p.LastAttempt = &now
		if err := s.progressRepo.SaveSpelling(ctx, q, p); err != nil {
			return 0, nil, err
		}
		update.SpellingProgress = p

		completed, err := s.progressRepo.CountCompletedSpelling(ctx, q, in.ChildID)
		level := in.Difficulty
		return completed, &level, err
	})
	if err != nil {
		return nil, err
	}
	return update, nil
}

// RecordWord stores a word-arrangement attempt and advances the words module
func (s *ProgressService) RecordWord(ctx context.Context, parentID int64, in WordInput) (*ProgressUpdate, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	wordIndex := *in.WordIndex
	update := &ProgressUpdate{}

	err := s.record(ctx, parentID, in.ChildID, models.ModuleWords, update, func(q database.DBTX, now time.Time) (int, *int, error) {
		p, err := s.progressRepo.GetWordForUpdate(ctx, q, in.ChildID, wordIndex, in.Difficulty)
		if err != nil {
			return 0, nil, err
		}
		if p == nil {
			p = &models.WordProgress{ChildID: in.ChildID, WordIndex: wordIndex, Difficulty: in.Difficulty}
		}
		applyAttempt(&p.CorrectCount, &p.IncorrectCount, in.IsCorrect)
		p.HintsUsed += in.HintsUsed
		p.ShufflesUsed += in.ShufflesUsed
		p.IsCompleted = in.IsCorrect
		p.LastAttempt = &now
		if err := s.progressRepo.SaveWord(ctx, q, p); err != nil {
			return 0, nil, err
		}
		update.WordProgress = p

		completed, err := s.progressRepo.CountCompletedWords(ctx, q, in.ChildID)
		level := in.Difficulty
		return completed, &level, err
	})
	if err != nil {
		return nil, err
	}
	return update, nil
}

// record serialises events per (child, module) and runs the detail step and
// the streak update in one transaction.
func (s *ProgressService) record(ctx context.Context, parentID, childID int64, module models.ModuleType, update *ProgressUpdate, step moduleStep) error {
	child, err := s.childRepo.GetChildForParent(ctx, childID, parentID)
	if err != nil {
		return err
	}
	if child == nil {
		return ErrChildNotFound
	}

	key := fmt.Sprintf("%d:%s", childID, module)
	waitStart := time.Now()
	unlock := s.locks.Lock(key)
	defer unlock()
	if waited := time.Since(waitStart); waited > 50*time.Millisecond {
		s.logger.Debug("progress lock contended", "key", key, "waited", waited)
	}

	now := s.now().UTC()

	return s.progressRepo.WithTx(ctx, func(q database.DBTX) error {
		lp, err := s.progressRepo.GetLearningForUpdate(ctx, q, childID, module)
		if err != nil {
			return err
		}
		if lp == nil {
			lp = &models.LearningProgress{ChildID: childID, ModuleType: module}
		}

		completed, level, err := step(q, now)
		if err != nil {
			return err
		}

		next := progress.Advance(progress.Session{
			LastSession:   lp.LastSession,
			StreakDays:    lp.StreakDays,
			TotalSessions: lp.TotalSessions,
		}, now, s.location)

		lp.TotalCompleted = completed
		if level != nil {
			lp.CurrentLevel = *level
		}
		lp.LastSession = next.LastSession
		lp.StreakDays = next.StreakDays
		lp.TotalSessions = next.TotalSessions
		lp.UpdatedAt = now

		if err := s.progressRepo.SaveLearning(ctx, q, lp); err != nil {
			return err
		}

		update.Success = true
		update.TotalCompleted = completed
		update.Progress = lp
		return nil
	})
}

func applyAttempt(correct, incorrect *int, isCorrect bool) {
	if isCorrect {
		*correct++
	} else {
		*incorrect++
	}
}

// GetSummary combines every module's progress for a child the parent owns
func (s *ProgressService) GetSummary(ctx context.Context, parentID, childID int64) (*models.ChildProgressSummary, error) {
	child, err := s.childRepo.GetChildForParent(ctx, childID, parentID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, ErrChildNotFound
	}

	var (
		modules          []models.LearningProgress
		completedLetters []string
		spellingDone     int
		wordsDone        int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		modules, err = s.progressRepo.ListLearning(gctx, childID)
		return err
	})
	g.Go(func() (err error) {
		completedLetters, err = s.progressRepo.CompletedLetters(gctx, childID)
		return err
	})
	g.Go(func() (err error) {
		spellingDone, err = s.progressRepo.CountCompletedSpelling(gctx, s.progressRepo.DB(), childID)
		return err
	})
	g.Go(func() (err error) {
		wordsDone, err = s.progressRepo.CountCompletedWords(gctx, s.progressRepo.DB(), childID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return buildSummary(modules, completedLetters, spellingDone, wordsDone), nil
}

func buildSummary(modules []models.LearningProgress, completedLetters []string, spellingDone, wordsDone int) *models.ChildProgressSummary {
	summary := &models.ChildProgressSummary{
		LettersCompleted:  len(completedLetters),
		SpellingCompleted: spellingDone,
		WordsCompleted:    wordsDone,
		CompletedLetters:  completedLetters,
		Letters:           models.ModuleSummary{CurrentLevel: 0, TotalCompleted: len(completedLetters)},
		Spelling:          models.ModuleSummary{CurrentLevel: 1, TotalCompleted: spellingDone},
		Words:             models.ModuleSummary{CurrentLevel: 1, TotalCompleted: wordsDone},
	}

	for _, m := range modules {
		summary.TotalSessions += m.TotalSessions
		summary.StreakDays = max(summary.StreakDays, m.StreakDays)
		if m.LastSession != nil && (summary.LastSession == nil || m.LastSession.After(*summary.LastSession)) {
			summary.LastSession = m.LastSession
		}

		switch m.ModuleType {
		case models.ModuleLetters:
			summary.Letters.CurrentLevel = m.CurrentLevel
		case models.ModuleSpelling:
			if m.CurrentLevel > 0 {
				summary.Spelling.CurrentLevel = m.CurrentLevel
			}
		case models.ModuleWords:
			if m.CurrentLevel > 0 {
				summary.Words.CurrentLevel = m.CurrentLevel
			}
		}
	}

	summary.AchievementsCount = progress.CountAchievements(summary.LettersCompleted, summary.SpellingCompleted, summary.StreakDays)
	return summary
}
