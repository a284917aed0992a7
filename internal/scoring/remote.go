package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// RemoteScorer scores assessments by calling the ML scoring service
type RemoteScorer struct {
	baseURL string
	client  *http.Client
}

var _ Strategy = (*RemoteScorer)(nil)

// ScoreError is returned when the remote service could not produce a usable
// score, so the caller can tell an unreachable service from a bad reply.
type ScoreError struct {
	Reason  string
	Wrapped error
}

func (e *ScoreError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("remote scoring failed: %s: %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("remote scoring failed: %s", e.Reason)
}

func (e *ScoreError) Unwrap() error {
	return e.Wrapped
}

// NewRemoteScorer creates a scorer for the service at baseURL.
// A nil client uses http.DefaultClient; deadlines come from the context.
func NewRemoteScorer(baseURL string, client *http.Client) *RemoteScorer {
	if client == nil {
		client = http.DefaultClient
	}
	return &RemoteScorer{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// predictResponse uses pointers so missing fields can be told apart from zero values
type predictResponse struct {
	RiskScore      *float64 `json:"risk_score"`
	Recommendation *string  `json:"recommendation"`
}

// Score posts the features to /predict. The returned score is clamped to [0,1].
func (s *RemoteScorer) Score(ctx context.Context, f Features) (Result, error) {
	body, err := json.Marshal(f)
	if err != nil {
		return Result{}, &ScoreError{Reason: "failed to marshal features", Wrapped: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return Result{}, &ScoreError{Reason: "failed to create request", Wrapped: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return Result{}, &ScoreError{Reason: "request failed", Wrapped: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Result{}, &ScoreError{Reason: fmt.Sprintf("service returned status %d", resp.StatusCode)}
	}

	var pr predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return Result{}, &ScoreError{Reason: "invalid JSON from service", Wrapped: err}
	}
	if pr.RiskScore == nil {
		return Result{}, &ScoreError{Reason: "response is missing risk_score"}
	}
	if pr.Recommendation == nil {
		return Result{}, &ScoreError{Reason: "response is missing recommendation"}
	}

	return Result{
		RiskScore:      clamp01(*pr.RiskScore),
		Recommendation: *pr.Recommendation,
	}, nil
}

// HealthStatus is the body returned by the service's /health endpoint
type HealthStatus struct {
	Status string `json:"status"`
}

// Health calls GET /health on the scoring service
func (s *RemoteScorer) Health(ctx context.Context) (HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/health", nil)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("health request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return HealthStatus{}, fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	var hs HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&hs); err != nil {
		return HealthStatus{}, fmt.Errorf("failed to decode health response: %w", err)
	}
	return hs, nil
}
