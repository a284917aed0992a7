package progress

import "testing"

func TestCountAchievements(t *testing.T) {
	tests := []struct {
		name                      string
		letters, spelling, streak int
		expected                  int
	}{
		{name: "nothing yet", expected: 0},
		{name: "first letter", letters: 1, expected: 1},
		{name: "whole alphabet", letters: 26, expected: 3},
		{name: "spelling milestones", spelling: 50, expected: 3},
		{name: "week streak", streak: 7, expected: 1},
		{name: "everything", letters: 26, spelling: 60, streak: 30, expected: 8},
		{name: "just short", letters: 9, spelling: 9, streak: 6, expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CountAchievements(tt.letters, tt.spelling, tt.streak)
			if got != tt.expected {
				t.Errorf("CountAchievements(%d, %d, %d) = %d, want %d",
					tt.letters, tt.spelling, tt.streak, got, tt.expected)
			}
		})
	}
}
