package scoring

import (
	"context"
	"math"
	"testing"
)

func TestHeuristicScore(t *testing.T) {
	tests := []struct {
		name     string
		features Features
		risk     float64
		tier     Tier
	}{
		{
			name:     "all perfect",
			features: Features{1, 1, 1, 1, 1, 2.0},
			risk:     0,
			tier:     TierLow,
		},
		{
			name:     "all categories correct with neutral metrics",
			features: Features{1, 1, 1, 0.5, 0.5, 2.0},
			risk:     0.2,
			tier:     TierLow,
		},
		{
			name:     "nothing correct",
			features: Features{0, 0, 0, 0, 0, 2.0},
			risk:     1,
			tier:     TierHigh,
		},
		{
			name:     "slow reactions add penalty",
			features: Features{1, 1, 1, 0.5, 0.5, 5.0},
			risk:     0.8,
			tier:     TierHigh,
		},
		{
			name:     "fast reactions give no bonus",
			features: Features{1, 1, 1, 0.5, 0.5, 0.5},
			risk:     0.2,
			tier:     TierLow,
		},
		{
			name:     "half correct",
			features: Features{0.5, 0.5, 0.5, 0.5, 0.5, 2.0},
			risk:     0.5,
			tier:     TierMedium,
		},
		{
			name:     "clamped above one",
			features: Features{0, 0, 0, 0, 0, 30},
			risk:     1,
			tier:     TierHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := HeuristicScore(tt.features)
			if math.Abs(res.RiskScore-tt.risk) > 1e-9 {
				t.Errorf("risk = %v, want %v", res.RiskScore, tt.risk)
			}
			if res.Recommendation != heuristicRecommendations[tt.tier] {
				t.Errorf("recommendation = %q, want %s tier text", res.Recommendation, tt.tier)
			}
		})
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		score float64
		tier  Tier
	}{
		{0, TierLow},
		{0.399, TierLow},
		{0.4, TierMedium},
		{0.699, TierMedium},
		{0.7, TierHigh},
		{1, TierHigh},
	}

	for _, tt := range tests {
		if got := TierFor(tt.score); got != tt.tier {
			t.Errorf("TierFor(%v) = %s, want %s", tt.score, got, tt.tier)
		}
	}
}

func TestHeuristicStrategyNeverFails(t *testing.T) {
	res, err := Heuristic{}.Score(context.Background(), Features{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Recommendation == "" {
		t.Fatal("expected a recommendation")
	}
}

func TestWeightedScore(t *testing.T) {
	tests := []struct {
		name     string
		features Features
		risk     float64
	}{
		{name: "perfect and fast", features: Features{1, 1, 1, 1, 0, 0}, risk: 0},
		{name: "neutral speech default reaction", features: Features{1, 1, 1, 0.5, 0.5, 2.0}, risk: 0.075*0.8 + 0.4*0.2},
		{name: "nothing correct slow", features: Features{0, 0, 0, 0, 0, 10}, risk: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Weighted{}.Score(context.Background(), tt.features)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(res.RiskScore-tt.risk) > 1e-9 {
				t.Errorf("risk = %v, want %v", res.RiskScore, tt.risk)
			}
			if res.Recommendation != weightedRecommendations[TierFor(tt.risk)] {
				t.Errorf("unexpected recommendation %q", res.Recommendation)
			}
		})
	}
}
