package scheduler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"binakata/internal/scoring"
)

type stubChecker struct {
	status scoring.HealthStatus
	err    error
	calls  atomic.Int32
}

func (s *stubChecker) Health(context.Context) (scoring.HealthStatus, error) {
	s.calls.Add(1)
	return s.status, s.err
}

func TestCheckRecordsResult(t *testing.T) {
	tests := []struct {
		name        string
		checker     *stubChecker
		wantStatus  string
		wantHealthy bool
		wantError   bool
	}{
		{"healthy", &stubChecker{status: scoring.HealthStatus{Status: "ok"}}, "ok", true, false},
		{"degraded", &stubChecker{status: scoring.HealthStatus{Status: "degraded"}}, "degraded", false, false},
		{"unreachable", &stubChecker{err: errors.New("connection refused")}, "unreachable", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probe := NewScorerProbe(tt.checker, 0, time.Second)
			if got := probe.LastResult(); got.Status != "unknown" || got.CheckedAt != nil {
				t.Fatalf("initial result = %+v, want unknown", got)
			}

			probe.Check(context.Background())
			got := probe.LastResult()
			if got.Status != tt.wantStatus || got.Healthy != tt.wantHealthy {
				t.Errorf("result = %+v, want status %q healthy %v", got, tt.wantStatus, tt.wantHealthy)
			}
			if (got.Error != "") != tt.wantError {
				t.Errorf("error = %q, wantError %v", got.Error, tt.wantError)
			}
			if got.CheckedAt == nil {
				t.Error("expected CheckedAt to be set")
			}
		})
	}
}

func TestDisabledProbeDoesNotSchedule(t *testing.T) {
	checker := &stubChecker{status: scoring.HealthStatus{Status: "ok"}}
	probe := NewScorerProbe(checker, 0, time.Second)
	if err := probe.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer probe.Stop()

	time.Sleep(50 * time.Millisecond)
	if n := checker.calls.Load(); n != 0 {
		t.Errorf("disabled probe made %d calls", n)
	}
}

func TestProbeAgainstRemoteScorer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	probe := NewScorerProbe(scoring.NewRemoteScorer(server.URL, server.Client()), time.Second, time.Second)
	if err := probe.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer probe.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if probe.LastResult().Healthy {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("probe never reported healthy: %+v", probe.LastResult())
}
