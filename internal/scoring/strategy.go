package scoring

import "context"

// Tier is the coarse risk band a score falls in
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// Tier thresholds. A score at a threshold belongs to the higher tier.
const (
	HighRiskThreshold   = 0.7
	MediumRiskThreshold = 0.4
)

// Result is the outcome of scoring one assessment
type Result struct {
	RiskScore      float64 `json:"risk_score"`
	Recommendation string  `json:"recommendation"`
}

// Strategy computes a risk score from a feature vector
type Strategy interface {
	Score(ctx context.Context, f Features) (Result, error)
}

// TierFor maps a risk score onto its tier
func TierFor(score float64) Tier {
	switch {
	case score >= HighRiskThreshold:
		return TierHigh
	case score >= MediumRiskThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
