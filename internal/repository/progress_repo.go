package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"binakata/internal/database"
	"binakata/internal/models"
)

// ProgressRepository handles database operations for learning modules.
// Methods that take a database.DBTX are meant to be called inside WithTx so
// the read and the write of one progress event share a transaction.
type ProgressRepository struct {
	db *database.DB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *database.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// WithTx runs fn inside a database transaction
func (r *ProgressRepository) WithTx(ctx context.Context, fn func(q database.DBTX) error) error {
	return r.db.WithTx(ctx, func(tx *database.Tx) error {
		return fn(tx)
	})
}

// GetLearningForUpdate reads a module's counters, locking the row where the
// dialect supports it. It returns nil if the child has no row for the module yet.
func (r *ProgressRepository) GetLearningForUpdate(ctx context.Context, q database.DBTX, childID int64, module models.ModuleType) (*models.LearningProgress, error) {
	lp := &models.LearningProgress{}
	err := q.GetContext(ctx, lp, `
		SELECT id, child_id, module_type, total_completed, current_level, last_session,
			streak_days, total_sessions, updated_at
		FROM learning_progress
		WHERE child_id = ? AND module_type = ?`+q.GetDialect().LockClause(), childID, module)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get learning progress: %w", err)
	}
	return lp, nil
}

// SaveLearning inserts lp when its ID is zero and updates it otherwise
func (r *ProgressRepository) SaveLearning(ctx context.Context, q database.DBTX, lp *models.LearningProgress) error {
	if !lp.ModuleType.Valid() {
		return fmt.Errorf("unknown module type %q", lp.ModuleType)
	}
	if lp.ID == 0 {
		id, err := q.ExecReturningID(ctx, `
			INSERT INTO learning_progress (child_id, module_type, total_completed, current_level,
				last_session, streak_days, total_sessions, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, lp.ChildID, lp.ModuleType, lp.TotalCompleted, lp.CurrentLevel,
			lp.LastSession, lp.StreakDays, lp.TotalSessions, lp.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert learning progress: %w", err)
		}
		lp.ID = id
		return nil
	}

	_, err := q.ExecContext(ctx, `
		UPDATE learning_progress
		SET total_completed = ?, current_level = ?, last_session = ?, streak_days = ?,
			total_sessions = ?, updated_at = ?
		WHERE id = ?
	`, lp.TotalCompleted, lp.CurrentLevel, lp.LastSession, lp.StreakDays,
		lp.TotalSessions, lp.UpdatedAt, lp.ID)
	if err != nil {
		return fmt.Errorf("failed to update learning progress: %w", err)
	}
	return nil
}

// ListLearning returns every module row for a child
func (r *ProgressRepository) ListLearning(ctx context.Context, childID int64) ([]models.LearningProgress, error) {
	rows := []models.LearningProgress{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, child_id, module_type, total_completed, current_level, last_session,
			streak_days, total_sessions, updated_at
		FROM learning_progress
		WHERE child_id = ?
		ORDER BY module_type
	`, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to list learning progress: %w", err)
	}
	return rows, nil
}

// ListAllLearning returns module rows for every child of parentID, or for
// every child when parentID is 0.
func (r *ProgressRepository) ListAllLearning(ctx context.Context, parentID int64) ([]models.LearningProgress, error) {
	rows := []models.LearningProgress{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT lp.id, lp.child_id, lp.module_type, lp.total_completed, lp.current_level,
			lp.last_session, lp.streak_days, lp.total_sessions, lp.updated_at
		FROM learning_progress lp
		JOIN children c ON c.id = lp.child_id
		WHERE ? = 0 OR c.parent_id = ?
		ORDER BY lp.child_id, lp.module_type
	`, parentID, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list learning progress: %w", err)
	}
	return rows, nil
}

// GetLetterForUpdate reads one letter's attempts, or nil if there are none yet
func (r *ProgressRepository) GetLetterForUpdate(ctx context.Context, q database.DBTX, childID int64, letter string) (*models.LetterProgress, error) {
	p := &models.LetterProgress{}
	err := q.GetContext(ctx, p, `
		SELECT id, child_id, letter, correct_count, incorrect_count, is_completed, last_attempt
		FROM letter_progress
		WHERE child_id = ? AND letter = ?`+q.GetDialect().LockClause(), childID, letter)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get letter progress: %w", err)
	}
	return p, nil
}

// SaveLetter inserts p when its ID is zero and updates it otherwise
func (r *ProgressRepository) SaveLetter(ctx context.Context, q database.DBTX, p *models.LetterProgress) error {
	if p.ID == 0 {
		id, err := q.ExecReturningID(ctx, `
			INSERT INTO letter_progress (child_id, letter, correct_count, incorrect_count, is_completed, last_attempt)
			VALUES (?, ?, ?, ?, ?, ?)
		`, p.ChildID, p.Letter, p.CorrectCount, p.IncorrectCount, p.IsCompleted, p.LastAttempt)
		if err != nil {
			return fmt.Errorf("failed to insert letter progress: %w", err)
		}
		p.ID = id
		return nil
	}

	_, err := q.ExecContext(ctx, `
		UPDATE letter_progress
		SET correct_count = ?, incorrect_count = ?, is_completed = ?, last_attempt = ?
		WHERE id = ?
	`, p.CorrectCount, p.IncorrectCount, p.IsCompleted, p.LastAttempt, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update letter progress: %w", err)
	}
	return nil
}

// CountCompletedLetters counts letters currently marked completed
func (r *ProgressRepository) CountCompletedLetters(ctx context.Context, q database.DBTX, childID int64) (int, error) {
	return countCompleted(ctx, q, "letter_progress", childID)
}

// CompletedLetters lists completed letters in alphabetical order
func (r *ProgressRepository) CompletedLetters(ctx context.Context, childID int64) ([]string, error) {
	letters := []string{}
	err := r.db.SelectContext(ctx, &letters, `
		SELECT letter FROM letter_progress
		WHERE child_id = ? AND is_completed = ?
		ORDER BY letter
	`, childID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed letters: %w", err)
	}
	return letters, nil
}

// GetSpellingForUpdate reads one spelling word's attempts, or nil if there are none yet
func (r *ProgressRepository) GetSpellingForUpdate(ctx context.Context, q database.DBTX, childID int64, wordIndex, difficulty int) (*models.SpellingProgress, error) {
	p := &models.SpellingProgress{}
	err := q.GetContext(ctx, p, `
		SELECT id, child_id, word_index, difficulty, correct_count, incorrect_count,
			hints_used, is_completed, last_attempt
		FROM spelling_progress
		WHERE child_id = ? AND word_index = ? AND difficulty = ?`+q.GetDialect().LockClause(),
		childID, wordIndex, difficulty)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get spelling progress: %w", err)
	}
	return p, nil
}

// SaveSpelling inserts p when its ID is zero and updates it otherwise
func (r *ProgressRepository) SaveSpelling(ctx context.Context, q database.DBTX, p *models.SpellingProgress) error {
	if p.ID == 0 {
		id, err := q.ExecReturningID(ctx, `
			INSERT INTO spelling_progress (child_id, word_index, difficulty, correct_count,
				incorrect_count, hints_used, is_completed, last_attempt)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, p.ChildID, p.WordIndex, p.Difficulty, p.CorrectCount,
			p.IncorrectCount, p.HintsUsed, p.IsCompleted, p.LastAttempt)
		if err != nil {
			return fmt.Errorf("failed to insert spelling progress: %w", err)
		}
		p.ID = id
		return nil
	}

	_, err := q.ExecContext(ctx, `
		UPDATE spelling_progress
		SET correct_count = ?, incorrect_count = ?, hints_used = ?, is_completed = ?, last_attempt = ?
		WHERE id = ?
	`, p.CorrectCount, p.IncorrectCount, p.HintsUsed, p.IsCompleted, p.LastAttempt, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update spelling progress: %w", err)
	}
	return nil
}

// CountCompletedSpelling counts spelling entries currently marked completed
func (r *ProgressRepository) CountCompletedSpelling(ctx context.Context, q database.DBTX, childID int64) (int, error) {
	return countCompleted(ctx, q, "spelling_progress", childID)
}

// GetWordForUpdate reads one arrangement puzzle's attempts, or nil if there are none yet
func (r *ProgressRepository) GetWordForUpdate(ctx context.Context, q database.DBTX, childID int64, wordIndex, difficulty int) (*models.WordProgress, error) {
	p := &models.WordProgress{}
	err := q.GetContext(ctx, p, `
		SELECT id, child_id, word_index, difficulty, correct_count, incorrect_count,
			hints_used, shuffles_used, is_completed, last_attempt
		FROM word_progress
		WHERE child_id = ? AND word_index = ? AND difficulty = ?`+q.GetDialect().LockClause(),
		childID, wordIndex, difficulty)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word progress: %w", err)
	}
	return p, nil
}

// SaveWord inserts p when its ID is zero and updates it otherwise
func (r *ProgressRepository) SaveWord(ctx context.Context, q database.DBTX, p *models.WordProgress) error {
	if p.ID == 0 {
		id, err := q.ExecReturningID(ctx, `
			INSERT INTO word_progress (child_id, word_index, difficulty, correct_count,
				incorrect_count, hints_used, shuffles_used, is_completed, last_attempt)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, p.ChildID, p.WordIndex, p.Difficulty, p.CorrectCount,
			p.IncorrectCount, p.HintsUsed, p.ShufflesUsed, p.IsCompleted, p.LastAttempt)
		if err != nil {
			return fmt.Errorf("failed to insert word progress: %w", err)
		}
		p.ID = id
		return nil
	}

	_, err := q.ExecContext(ctx, `
		UPDATE word_progress
		SET correct_count = ?, incorrect_count = ?, hints_used = ?, shuffles_used = ?,
			is_completed = ?, last_attempt = ?
		WHERE id = ?
	`, p.CorrectCount, p.IncorrectCount, p.HintsUsed, p.ShufflesUsed, p.IsCompleted, p.LastAttempt, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update word progress: %w", err)
	}
	return nil
}

// CountCompletedWords counts arrangement puzzles currently marked completed
func (r *ProgressRepository) CountCompletedWords(ctx context.Context, q database.DBTX, childID int64) (int, error) {
	return countCompleted(ctx, q, "word_progress", childID)
}

// DB exposes the connection for read-only helpers that take a database.DBTX
func (r *ProgressRepository) DB() database.DBTX {
	return r.db
}

// table must be a trusted identifier, never user input
func countCompleted(ctx context.Context, q database.DBTX, table string, childID int64) (int, error) {
	var n int
	err := q.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+table+" WHERE child_id = ? AND is_completed = ?", childID, true)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed rows in %s: %w", table, err)
	}
	return n, nil
}
