package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"binakata/internal/scoring"
)

// HealthChecker is the part of the remote scorer the probe calls
type HealthChecker interface {
	Health(ctx context.Context) (scoring.HealthStatus, error)
}

// ProbeResult is the outcome of the most recent scorer health check
type ProbeResult struct {
	Status    string     `json:"status"`
	Healthy   bool       `json:"healthy"`
	Error     string     `json:"error,omitempty"`
	CheckedAt *time.Time `json:"checked_at"`
}

// ScorerProbe periodically checks the remote scoring service and keeps
// the last result for the health endpoint
type ScorerProbe struct {
	scheduler *gocron.Scheduler
	checker   HealthChecker
	interval  time.Duration
	timeout   time.Duration

	mu   sync.RWMutex
	last ProbeResult
}

// NewScorerProbe creates a probe. An interval of zero disables scheduling;
// Check can still be called directly.
func NewScorerProbe(checker HealthChecker, interval, timeout time.Duration) *ScorerProbe {
	return &ScorerProbe{
		scheduler: gocron.NewScheduler(time.UTC),
		checker:   checker,
		interval:  interval,
		timeout:   timeout,
		last:      ProbeResult{Status: "unknown"},
	}
}

// Start runs a check immediately and then every interval
func (p *ScorerProbe) Start() error {
	if p.interval <= 0 {
		log.Println("Scorer health probe disabled")
		return nil
	}

	if _, err := p.scheduler.Every(p.interval).Do(p.run); err != nil {
		return err
	}
	p.scheduler.StartAsync()
	log.Printf("Scorer health probe started (every %s)", p.interval)
	return nil
}

// Stop terminates the scheduled checks
func (p *ScorerProbe) Stop() {
	p.scheduler.Stop()
}

func (p *ScorerProbe) run() {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	p.Check(ctx)
}

// Check calls the scorer once and records the result
func (p *ScorerProbe) Check(ctx context.Context) ProbeResult {
	now := time.Now().UTC()
	result := ProbeResult{CheckedAt: &now}

	status, err := p.checker.Health(ctx)
	if err != nil {
		result.Status = "unreachable"
		result.Error = err.Error()
		log.Printf("Scorer health check failed: %v", err)
	} else {
		result.Status = status.Status
		result.Healthy = status.Status == "ok"
	}

	p.mu.Lock()
	wasHealthy := p.last.Healthy
	p.last = result
	p.mu.Unlock()

	if result.Healthy && !wasHealthy {
		log.Println("Scorer is healthy")
	}
	return result
}

// LastResult returns the most recent check
func (p *ScorerProbe) LastResult() ProbeResult {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}
