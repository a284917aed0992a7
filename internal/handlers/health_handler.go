package handlers

import (
	"net/http"
	"sync"

	"binakata/internal/scheduler"
)

// Startup steps reported by /health until the server is ready
const (
	StepDatabase   = "Database connection"
	StepMigrations = "Running migrations"
	StepServices   = "Initializing services"
	StepProbe      = "Starting scorer probe"
)

// StartupStatus tracks the initialization progress
type StartupStatus struct {
	mu       sync.RWMutex
	ready    bool
	current  string
	progress int
	steps    []StartupStep
}

type StartupStep struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// NewStartupStatus creates a tracker for the given steps
func NewStartupStatus(steps ...string) *StartupStatus {
	s := &StartupStatus{current: "Initializing..."}
	for _, name := range steps {
		s.steps = append(s.steps, StartupStep{Name: name})
	}
	return s
}

// SetCurrentStep updates the current initialization step
func (s *StartupStatus) SetCurrentStep(step string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = step
}

// CompleteStep marks a step as completed and updates progress
func (s *StartupStatus) CompleteStep(stepName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	completed := 0
	for i := range s.steps {
		if s.steps[i].Name == stepName {
			s.steps[i].Completed = true
		}
		if s.steps[i].Completed {
			completed++
		}
	}
	if len(s.steps) > 0 {
		s.progress = (completed * 100) / len(s.steps)
	}
}

// MarkReady marks the server as fully initialized
func (s *StartupStatus) MarkReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = true
	s.current = "Server ready"
	s.progress = 100
}

// IsReady returns whether the server is fully initialized
func (s *StartupStatus) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

type startupBody struct {
	Status   string        `json:"status"`
	Current  string        `json:"current,omitempty"`
	Progress int           `json:"progress,omitempty"`
	Steps    []StartupStep `json:"steps,omitempty"`
}

func (s *StartupStatus) snapshot() startupBody {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ready {
		return startupBody{Status: "ok"}
	}
	return startupBody{
		Status:   "starting",
		Current:  s.current,
		Progress: s.progress,
		Steps:    append([]StartupStep(nil), s.steps...),
	}
}

// ProbeReporter exposes the last scorer health check
type ProbeReporter interface {
	LastResult() scheduler.ProbeResult
}

// HealthHandler serves liveness and scorer health
type HealthHandler struct {
	startup *StartupStatus
	probe   ProbeReporter
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(startup *StartupStatus, probe ProbeReporter) *HealthHandler {
	return &HealthHandler{startup: startup, probe: probe}
}

// Health reports ok once startup finished and 503 with progress before that
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	body := h.startup.snapshot()
	status := http.StatusOK
	if body.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, body)
}

// ScorerHealth returns the last scorer probe result
func (h *HealthHandler) ScorerHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.probe.LastResult())
}
