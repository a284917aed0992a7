package models

import (
	"testing"
	"time"
)

func TestAssessmentIsSubmitted(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name        string
		submittedAt *time.Time
		want        bool
	}{
		{name: "pending", submittedAt: nil, want: false},
		{name: "submitted", submittedAt: &now, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Assessment{ID: 1, ChildID: 2, StartedAt: now, SubmittedAt: tt.submittedAt}
			if got := a.IsSubmitted(); got != tt.want {
				t.Errorf("IsSubmitted() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestModuleTypeValid(t *testing.T) {
	tests := []struct {
		module ModuleType
		want   bool
	}{
		{ModuleLetters, true},
		{ModuleSpelling, true},
		{ModuleWords, true},
		{"hangman", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.module), func(t *testing.T) {
			if got := tt.module.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
