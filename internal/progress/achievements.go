package progress

// Achievement thresholds per module. Each threshold reached counts once.
var (
	LetterMilestones   = []int{1, 10, 26}
	SpellingMilestones = []int{1, 10, 50}
	StreakMilestones   = []int{7, 30}
)

// CountAchievements returns the number of milestones reached
func CountAchievements(lettersCompleted, spellingCompleted, streakDays int) int {
	return reached(LetterMilestones, lettersCompleted) +
		reached(SpellingMilestones, spellingCompleted) +
		reached(StreakMilestones, streakDays)
}

func reached(milestones []int, value int) int {
	n := 0
	for _, m := range milestones {
		if value >= m {
			n++
		}
	}
	return n
}
