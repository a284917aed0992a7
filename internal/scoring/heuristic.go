package scoring

import "context"

var heuristicRecommendations = map[Tier]string{
	TierHigh:   "Risiko tinggi: rujuk evaluasi profesional; mulai modul huruf dasar.",
	TierMedium: "Risiko sedang: fokuskan latihan ejaan interaktif dan susun kata.",
	TierLow:    "Risiko rendah: lanjutkan latihan bertahap dan pemantauan.",
}

// Heuristic is the local rule-based scorer used when the remote model is unavailable
type Heuristic struct{}

var _ Strategy = Heuristic{}

// Score never fails
func (Heuristic) Score(_ context.Context, f Features) (Result, error) {
	return HeuristicScore(f), nil
}

// HeuristicScore averages the five accuracies and penalises reaction times
// slower than two seconds.
func HeuristicScore(f Features) Result {
	avgAcc := (f.LettersAccuracy + f.WordsAccuracy + f.ArrangeAccuracy + f.SpeechAccuracy + f.ImageAccuracy) / 5
	rtPenalty := max(0, (f.AvgReactionTime-2)/5)
	risk := clamp01(1 - avgAcc + rtPenalty)

	return Result{
		RiskScore:      risk,
		Recommendation: Recommend(risk),
	}
}

// Recommend returns the fixed recommendation text for the tier of score
func Recommend(score float64) string {
	return heuristicRecommendations[TierFor(score)]
}
