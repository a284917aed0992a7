package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"binakata/internal/service"
	"binakata/internal/validation"
)

type errorBody struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondJSON(w, status, errorBody{Error: userMsg})
}

// handleServiceError maps service errors to HTTP responses. Only unexpected
// errors are logged.
func handleServiceError(w http.ResponseWriter, err error, logMsg string) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "Validation failed", Fields: verr.Fields})
	case errors.Is(err, service.ErrInvalidCredentials):
		respondWithError(w, http.StatusUnauthorized, "Invalid email or password", "", nil)
	case errors.Is(err, service.ErrEmailTaken):
		respondWithError(w, http.StatusBadRequest, "Email already registered", "", nil)
	case errors.Is(err, service.ErrChildNotFound):
		respondWithError(w, http.StatusNotFound, "Child not found", "", nil)
	case errors.Is(err, service.ErrAssessmentNotFound):
		respondWithError(w, http.StatusNotFound, "Assessment not found", "", nil)
	case errors.Is(err, service.ErrAssessmentSubmitted):
		respondWithError(w, http.StatusConflict, "Assessment already submitted", "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, logMsg, err)
	}
}

// decodeJSON reads a single JSON object from the request body into dst.
// It writes a 400 and returns false when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		msg := ErrInvalidJSON
		if errors.Is(err, io.EOF) {
			msg = "Request body is empty"
		}
		respondWithError(w, http.StatusBadRequest, msg, "", nil)
		return false
	}
	return true
}

// pathID parses a positive integer path value. It writes a 400 and returns
// false when the value is missing or malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		respondWithError(w, http.StatusBadRequest, ErrInvalidID, "", nil)
		return 0, false
	}
	return id, true
}
