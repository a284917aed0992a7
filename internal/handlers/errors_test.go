package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"binakata/internal/service"
	"binakata/internal/validation"
)

func TestRespondWithErrorWritesStatusAndBody(t *testing.T) {
	recorder := httptest.NewRecorder()

	respondWithError(recorder, 418, "Teapot", "", nil)

	if recorder.Code != 418 {
		t.Fatalf("expected status 418, got %d", recorder.Code)
	}
	if ct := recorder.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected JSON content type, got %q", ct)
	}

	var body errorBody
	if err := json.NewDecoder(recorder.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Error != "Teapot" {
		t.Fatalf("expected error 'Teapot', got %q", body.Error)
	}
}

func TestRespondWithErrorLogsMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := log.Default()
	originalOutput := logger.Writer()
	logger.SetOutput(&buf)
	defer logger.SetOutput(originalOutput)

	recorder := httptest.NewRecorder()
	err := errors.New("boom")

	respondWithError(recorder, 500, "Internal server error", "", err)

	logOutput := buf.String()
	if !strings.Contains(logOutput, "Internal server error") {
		t.Fatalf("expected log to include user message, got %q", logOutput)
	}
	if !strings.Contains(logOutput, "boom") {
		t.Fatalf("expected log to include error, got %q", logOutput)
	}
}

func TestHandleServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", validation.NewError("email", "email is required"), http.StatusBadRequest},
		{"credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"email taken", service.ErrEmailTaken, http.StatusBadRequest},
		{"child", fmt.Errorf("lookup: %w", service.ErrChildNotFound), http.StatusNotFound},
		{"assessment", service.ErrAssessmentNotFound, http.StatusNotFound},
		{"submitted", service.ErrAssessmentSubmitted, http.StatusConflict},
		{"unexpected", errors.New("disk full"), http.StatusInternalServerError},
	}

	var buf bytes.Buffer
	logger := log.Default()
	originalOutput := logger.Writer()
	logger.SetOutput(&buf)
	defer logger.SetOutput(originalOutput)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			handleServiceError(recorder, tt.err, "Failed to do thing")
			if recorder.Code != tt.status {
				t.Errorf("status = %d, want %d", recorder.Code, tt.status)
			}
		})
	}

	if !strings.Contains(buf.String(), "disk full") {
		t.Error("expected unexpected errors to be logged")
	}
	if strings.Contains(buf.String(), "email is required") {
		t.Error("validation errors must not be logged")
	}
}

func TestHandleServiceErrorValidationFields(t *testing.T) {
	recorder := httptest.NewRecorder()
	handleServiceError(recorder, validation.NewError("name", "name is required"), "")

	var body errorBody
	if err := json.NewDecoder(recorder.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(body.Fields) != 1 || body.Fields[0].Field != "name" {
		t.Errorf("fields = %+v", body.Fields)
	}
}

func TestHandleServiceErrorHidesInternalCause(t *testing.T) {
	var buf bytes.Buffer
	logger := log.Default()
	originalOutput := logger.Writer()
	logger.SetOutput(&buf)
	defer logger.SetOutput(originalOutput)

	recorder := httptest.NewRecorder()
	handleServiceError(recorder, errors.New("pq: relation does not exist"), "Failed to load")
	if strings.Contains(recorder.Body.String(), "pq:") {
		t.Errorf("internal cause leaked to client: %s", recorder.Body.String())
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		ok   bool
	}{
		{"valid", `{"email":"a@example.com"}`, true},
		{"empty", ``, false},
		{"malformed", `{"email":`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst service.Credentials
			if got := decodeJSON(recorder, req, &dst); got != tt.ok {
				t.Fatalf("decodeJSON() = %v, want %v", got, tt.ok)
			}
			if !tt.ok && recorder.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", recorder.Code)
			}
		})
	}
}

func TestPathID(t *testing.T) {
	tests := []struct {
		value string
		want  int64
		ok    bool
	}{
		{"42", 42, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.SetPathValue("id", tt.value)
			got, ok := pathID(recorder, req, "id")
			if got != tt.want || ok != tt.ok {
				t.Errorf("pathID(%q) = %d, %v; want %d, %v", tt.value, got, ok, tt.want, tt.ok)
			}
		})
	}
}
