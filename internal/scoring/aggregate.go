package scoring

import "binakata/internal/models"

// Neutral values used when the interactive session did not report a metric
const (
	DefaultSpeechAccuracy  = 0.5
	DefaultImageAccuracy   = 0.5
	DefaultAvgReactionTime = 2.0
)

// Features is the feature vector sent to the risk scorer
type Features struct {
	LettersAccuracy float64 `json:"letters_accuracy"`
	WordsAccuracy   float64 `json:"words_accuracy"`
	ArrangeAccuracy float64 `json:"arrange_accuracy"`
	SpeechAccuracy  float64 `json:"speech_accuracy"`
	ImageAccuracy   float64 `json:"image_accuracy"`
	AvgReactionTime float64 `json:"avg_reaction_time"`
}

// Metrics are optional auxiliary measurements from the interactive session.
// Nil fields take the neutral defaults.
type Metrics struct {
	SpeechAccuracy  *float64 `json:"speech_accuracy,omitempty" validate:"omitempty,gte=0,lte=1"`
	ImageAccuracy   *float64 `json:"image_accuracy,omitempty" validate:"omitempty,gte=0,lte=1"`
	AvgReactionTime *float64 `json:"avg_reaction_time,omitempty" validate:"omitempty,gte=0"`
}

// Merge returns m with every nil field filled from other
func (m Metrics) Merge(other Metrics) Metrics {
	if m.SpeechAccuracy == nil {
		m.SpeechAccuracy = other.SpeechAccuracy
	}
	if m.ImageAccuracy == nil {
		m.ImageAccuracy = other.ImageAccuracy
	}
	if m.AvgReactionTime == nil {
		m.AvgReactionTime = other.AvgReactionTime
	}
	return m
}

// GradedItem is an item whose correctness has been decided
type GradedItem struct {
	Type    models.ItemType
	Correct bool
}

type tally struct {
	correct, total int
}

func (t tally) accuracy() float64 {
	if t.total == 0 {
		return 0
	}
	return float64(t.correct) / float64(t.total)
}

// Aggregate rolls graded items up into per-category accuracies and applies
// metric defaults. A category with no items has accuracy 0.
func Aggregate(items []GradedItem, metrics Metrics) Features {
	tallies := make(map[models.ItemType]*tally, 3)
	for _, t := range []models.ItemType{models.ItemLetter, models.ItemWord, models.ItemArrange} {
		tallies[t] = &tally{}
	}

	for _, item := range items {
		t, ok := tallies[item.Type]
		if !ok {
			continue
		}
		t.total++
		if item.Correct {
			t.correct++
		}
	}

	return Features{
		LettersAccuracy: tallies[models.ItemLetter].accuracy(),
		WordsAccuracy:   tallies[models.ItemWord].accuracy(),
		ArrangeAccuracy: tallies[models.ItemArrange].accuracy(),
		SpeechAccuracy:  valueOr(metrics.SpeechAccuracy, DefaultSpeechAccuracy),
		ImageAccuracy:   valueOr(metrics.ImageAccuracy, DefaultImageAccuracy),
		AvgReactionTime: valueOr(metrics.AvgReactionTime, DefaultAvgReactionTime),
	}
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
