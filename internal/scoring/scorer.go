package scoring

import (
	"context"
	"log/slog"
	"math"
	"time"
)

// DefaultTimeout bounds a single call to the primary strategy
const DefaultTimeout = 4 * time.Second

// Source reports which strategy produced a score
type Source string

const (
	SourcePrimary  Source = "primary"
	SourceFallback Source = "fallback"
)

// Scorer tries the primary strategy once and falls back on any failure
type Scorer struct {
	primary  Strategy
	fallback Strategy
	timeout  time.Duration
	logger   *slog.Logger
}

// NewScorer creates an orchestrator. A non-positive timeout uses DefaultTimeout.
// A nil primary always uses the fallback.
func NewScorer(primary, fallback Strategy, timeout time.Duration, logger *slog.Logger) *Scorer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if fallback == nil {
		fallback = Heuristic{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scorer{
		primary:  primary,
		fallback: fallback,
		timeout:  timeout,
		logger:   logger,
	}
}

// Score always returns a result with RiskScore in [0,1]
func (s *Scorer) Score(ctx context.Context, f Features) Result {
	res, _ := s.ScoreWithSource(ctx, f)
	return res
}

// ScoreWithSource is Score that also reports which strategy answered
func (s *Scorer) ScoreWithSource(ctx context.Context, f Features) (Result, Source) {
	if s.primary != nil {
		res, err := s.callPrimary(ctx, f)
		if err == nil {
			s.logger.Debug("risk scored", "source", SourcePrimary, "risk_score", res.RiskScore)
			return res, SourcePrimary
		}
		s.logger.Warn("primary scorer failed, using fallback", "error", err)
	}

	res, err := s.fallback.Score(ctx, f)
	if err != nil {
		// Heuristic never fails; a custom fallback that does still gets a result.
		s.logger.Error("fallback scorer failed", "error", err)
		res = HeuristicScore(f)
	}
	res.RiskScore = clamp01(res.RiskScore)
	s.logger.Debug("risk scored", "source", SourceFallback, "risk_score", res.RiskScore)
	return res, SourceFallback
}

func (s *Scorer) callPrimary(ctx context.Context, f Features) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.primary.Score(ctx, f)
	if err != nil {
		return Result{}, err
	}
	if math.IsNaN(res.RiskScore) {
		return Result{}, &ScoreError{Reason: "risk_score is not a number"}
	}
	res.RiskScore = clamp01(res.RiskScore)
	return res, nil
}
