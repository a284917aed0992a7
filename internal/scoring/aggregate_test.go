package scoring

import (
	"math"
	"testing"

	"binakata/internal/models"
)

func ptr(v float64) *float64 { return &v }

func TestAggregate(t *testing.T) {
	tests := []struct {
		name     string
		items    []GradedItem
		metrics  Metrics
		expected Features
	}{
		{
			name:  "no items uses zero accuracies and defaults",
			items: nil,
			expected: Features{
				SpeechAccuracy:  0.5,
				ImageAccuracy:   0.5,
				AvgReactionTime: 2.0,
			},
		},
		{
			name: "per category ratios",
			items: []GradedItem{
				{Type: models.ItemLetter, Correct: true},
				{Type: models.ItemLetter, Correct: true},
				{Type: models.ItemLetter, Correct: false},
				{Type: models.ItemLetter, Correct: true},
				{Type: models.ItemWord, Correct: true},
				{Type: models.ItemWord, Correct: false},
				{Type: models.ItemArrange, Correct: false},
			},
			expected: Features{
				LettersAccuracy: 0.75,
				WordsAccuracy:   0.5,
				ArrangeAccuracy: 0,
				SpeechAccuracy:  0.5,
				ImageAccuracy:   0.5,
				AvgReactionTime: 2.0,
			},
		},
		{
			name: "unknown types ignored",
			items: []GradedItem{
				{Type: models.ItemType("picture"), Correct: true},
				{Type: models.ItemArrange, Correct: true},
			},
			expected: Features{
				ArrangeAccuracy: 1,
				SpeechAccuracy:  0.5,
				ImageAccuracy:   0.5,
				AvgReactionTime: 2.0,
			},
		},
		{
			name: "explicit metrics",
			items: []GradedItem{
				{Type: models.ItemWord, Correct: true},
			},
			metrics: Metrics{SpeechAccuracy: ptr(0.9), ImageAccuracy: ptr(0), AvgReactionTime: ptr(3.5)},
			expected: Features{
				WordsAccuracy:   1,
				SpeechAccuracy:  0.9,
				ImageAccuracy:   0,
				AvgReactionTime: 3.5,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.items, tt.metrics)
			if got != tt.expected {
				t.Errorf("Aggregate() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestMetricsMerge(t *testing.T) {
	explicit := Metrics{SpeechAccuracy: ptr(0.2)}
	derived := Metrics{SpeechAccuracy: ptr(0.8), ImageAccuracy: ptr(0.6)}

	merged := explicit.Merge(derived)

	if *merged.SpeechAccuracy != 0.2 {
		t.Errorf("expected explicit speech 0.2 to win, got %v", *merged.SpeechAccuracy)
	}
	if merged.ImageAccuracy == nil || *merged.ImageAccuracy != 0.6 {
		t.Errorf("expected derived image 0.6, got %v", merged.ImageAccuracy)
	}
	if merged.AvgReactionTime != nil {
		t.Errorf("expected reaction time to stay nil, got %v", *merged.AvgReactionTime)
	}
}

func TestDeriveMetrics(t *testing.T) {
	t.Run("no interactions", func(t *testing.T) {
		m := DeriveMetrics(nil)
		if *m.SpeechAccuracy != 0.5 || *m.ImageAccuracy != 0.5 || *m.AvgReactionTime != 2.0 {
			t.Errorf("unexpected defaults: %v %v %v", *m.SpeechAccuracy, *m.ImageAccuracy, *m.AvgReactionTime)
		}
	})

	t.Run("voice blends similarity", func(t *testing.T) {
		m := DeriveMetrics([]Interaction{
			{Kind: InteractionVoice, Target: "buku", Transcript: "buku"},
			{Kind: InteractionVoice, Target: "paku", Transcript: "baku"},
		})
		// 0.5 -> 0.75 -> 0.5*0.75 + 0.5*0.75
		if math.Abs(*m.SpeechAccuracy-0.75) > 1e-9 {
			t.Errorf("speech = %v, want 0.75", *m.SpeechAccuracy)
		}
	})

	t.Run("image steps are clamped", func(t *testing.T) {
		m := DeriveMetrics([]Interaction{
			{Kind: InteractionImage, Correct: true},
			{Kind: InteractionImage, Correct: true},
			{Kind: InteractionImage, Correct: true},
		})
		if *m.ImageAccuracy != 1 {
			t.Errorf("image = %v, want 1", *m.ImageAccuracy)
		}

		m = DeriveMetrics([]Interaction{
			{Kind: InteractionImage},
			{Kind: InteractionImage},
			{Kind: InteractionImage},
			{Kind: InteractionImage},
			{Kind: InteractionImage},
			{Kind: InteractionImage},
		})
		if *m.ImageAccuracy != 0 {
			t.Errorf("image = %v, want 0", *m.ImageAccuracy)
		}
	})

	t.Run("reaction samples averaged in seconds", func(t *testing.T) {
		m := DeriveMetrics([]Interaction{
			{Kind: InteractionImage, Correct: true, ReactionMs: ptr(1000)},
			{Kind: InteractionVoice, Target: "a", Transcript: "a", ReactionMs: ptr(3000)},
			{Kind: InteractionImage, Correct: true},
		})
		if math.Abs(*m.AvgReactionTime-2.0) > 1e-9 {
			t.Errorf("avg reaction = %v, want 2.0", *m.AvgReactionTime)
		}
	})
}
