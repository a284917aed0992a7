package scoring

import "context"

var weightedRecommendations = map[Tier]string{
	TierHigh:   "Risiko tinggi: rujuk evaluasi profesional; fokus modul huruf dasar, ejaan pelan dengan audio, dan latihan pengenalan gambar tingkat dasar.",
	TierMedium: "Risiko sedang: latihan ejaan interaktif, permainan susun kata, dan latihan gambar berpasangan.",
	TierLow:    "Risiko rendah: lanjutkan latihan bertahap dan pemantauan konsistensi.",
}

// Weighted is the rule-based model served by the stand-in scoring service.
// Accuracy weighs letters and words 0.3 each, arrange 0.25 and speech 0.15.
// Image accuracy does not contribute.
type Weighted struct{}

var _ Strategy = Weighted{}

func (Weighted) Score(_ context.Context, f Features) (Result, error) {
	accuracy := 0.3*f.LettersAccuracy + 0.3*f.WordsAccuracy + 0.25*f.ArrangeAccuracy + 0.15*f.SpeechAccuracy
	timeFactor := min(1, f.AvgReactionTime/5)
	risk := clamp01((1-accuracy)*0.8 + timeFactor*0.2)

	return Result{
		RiskScore:      risk,
		Recommendation: weightedRecommendations[TierFor(risk)],
	}, nil
}
