package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"binakata/internal/security"
)

type stubAuth struct{}

func (stubAuth) Authenticate(token string) (int64, error) {
	if token == "good" {
		return 7, nil
	}
	return 0, errors.New("invalid token")
}

func TestRequireAuth(t *testing.T) {
	m := NewMiddleware(stubAuth{}, nil)
	var gotID int64
	handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		gotID = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"invalid token", "Bearer bad", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusNoContent},
		{"lowercase scheme", "bearer good", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID = 0
			req := httptest.NewRequest(http.MethodGet, "/api/children", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()
			handler(recorder, req)

			if recorder.Code != tt.status {
				t.Errorf("status = %d, want %d", recorder.Code, tt.status)
			}
			if tt.status == http.StatusNoContent && gotID != 7 {
				t.Errorf("user id in context = %d, want 7", gotID)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	limiter := security.NewRateLimiter(2, time.Minute)
	defer limiter.Stop()
	m := NewMiddleware(stubAuth{}, limiter)
	handler := m.RateLimit(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		recorder := httptest.NewRecorder()
		handler(recorder, req)
		codes = append(codes, recorder.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("status codes = %v, want [200 200 429]", codes)
	}

	// another client keeps its own budget
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	recorder := httptest.NewRecorder()
	handler(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Errorf("second client status = %d, want 200", recorder.Code)
	}
}

func TestLoggingSetsRequestID(t *testing.T) {
	var ctxID string
	handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID, _ = r.Context().Value(RequestIDContextKey).(string)
		w.WriteHeader(http.StatusTeapot)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	id := recorder.Header().Get(RequestIDHeader)
	if id == "" || id != ctxID {
		t.Errorf("request id header %q, context %q", id, ctxID)
	}
	if recorder.Code != http.StatusTeapot {
		t.Errorf("status = %d, want 418", recorder.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "upstream-id")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	if got := recorder.Header().Get(RequestIDHeader); got != "upstream-id" {
		t.Errorf("request id = %q, want the incoming one", got)
	}
}
