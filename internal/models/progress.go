package models

import "time"

// ModuleType names a learning module
type ModuleType string

const (
	ModuleLetters  ModuleType = "letters"
	ModuleSpelling ModuleType = "spelling"
	ModuleWords    ModuleType = "words"
)

// Valid reports whether m is a known module
func (m ModuleType) Valid() bool {
	switch m {
	case ModuleLetters, ModuleSpelling, ModuleWords:
		return true
	}
	return false
}

// LearningProgress holds the per-module counters for a child
type LearningProgress struct {
	ID             int64      `db:"id" json:"-"`
	ChildID        int64      `db:"child_id" json:"childId"`
	ModuleType     ModuleType `db:"module_type" json:"moduleType"`
	TotalCompleted int        `db:"total_completed" json:"totalCompleted"`
	CurrentLevel   int        `db:"current_level" json:"currentLevel"`
	LastSession    *time.Time `db:"last_session" json:"lastSession"`
	StreakDays     int        `db:"streak_days" json:"streakDays"`
	TotalSessions  int        `db:"total_sessions" json:"totalSessions"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updatedAt"`
}

// LetterProgress tracks attempts on a single letter
type LetterProgress struct {
	ID             int64      `db:"id" json:"id"`
	ChildID        int64      `db:"child_id" json:"childId"`
	Letter         string     `db:"letter" json:"letter"`
	CorrectCount   int        `db:"correct_count" json:"correctCount"`
	IncorrectCount int        `db:"incorrect_count" json:"incorrectCount"`
	IsCompleted    bool       `db:"is_completed" json:"isCompleted"`
	LastAttempt    *time.Time `db:"last_attempt" json:"lastAttempt"`
}

// SpellingProgress tracks attempts on one spelling word at one difficulty
type SpellingProgress struct {
	ID             int64      `db:"id" json:"id"`
	ChildID        int64      `db:"child_id" json:"childId"`
	WordIndex      int        `db:"word_index" json:"wordIndex"`
	Difficulty     int        `db:"difficulty" json:"difficulty"`
	CorrectCount   int        `db:"correct_count" json:"correctCount"`
	IncorrectCount int        `db:"incorrect_count" json:"incorrectCount"`
	HintsUsed      int        `db:"hints_used" json:"hintsUsed"`
	IsCompleted    bool       `db:"is_completed" json:"isCompleted"`
	LastAttempt    *time.Time `db:"last_attempt" json:"lastAttempt"`
}

// WordProgress tracks attempts on one word-arrangement puzzle at one difficulty
type WordProgress struct {
	ID             int64      `db:"id" json:"id"`
	ChildID        int64      `db:"child_id" json:"childId"`
	WordIndex      int        `db:"word_index" json:"wordIndex"`
	Difficulty     int        `db:"difficulty" json:"difficulty"`
	CorrectCount   int        `db:"correct_count" json:"correctCount"`
	IncorrectCount int        `db:"incorrect_count" json:"incorrectCount"`
	HintsUsed      int        `db:"hints_used" json:"hintsUsed"`
	ShufflesUsed   int        `db:"shuffles_used" json:"shufflesUsed"`
	IsCompleted    bool       `db:"is_completed" json:"isCompleted"`
	LastAttempt    *time.Time `db:"last_attempt" json:"lastAttempt"`
}

// ModuleSummary is the per-module part of a child's progress report
type ModuleSummary struct {
	CurrentLevel   int `json:"currentLevel"`
	TotalCompleted int `json:"totalCompleted"`
}

// ChildProgressSummary combines all learning modules for a child
type ChildProgressSummary struct {
	LettersCompleted  int        `json:"letters_completed"`
	WordsCompleted    int        `json:"words_completed"`
	SpellingCompleted int        `json:"spelling_completed"`
	TotalSessions     int        `json:"total_sessions"`
	StreakDays        int        `json:"streak_days"`
	AchievementsCount int        `json:"achievements_count"`
	LastSession       *time.Time `json:"last_session"`

	CompletedLetters []string      `json:"completed_letters"`
	Letters          ModuleSummary `json:"letters"`
	Spelling         ModuleSummary `json:"spelling"`
	Words            ModuleSummary `json:"words"`
}
