package handlers

import (
	"net/http"

	"binakata/internal/service"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a parent account and returns a token
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in service.Credentials
	if !decodeJSON(w, r, &in) {
		return
	}

	result, err := h.authService.Register(r.Context(), in)
	if err != nil {
		handleServiceError(w, err, "Failed to register user")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Login exchanges credentials for a token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in service.Credentials
	if !decodeJSON(w, r, &in) {
		return
	}

	result, err := h.authService.Login(r.Context(), in)
	if err != nil {
		handleServiceError(w, err, "Failed to log in")
		return
	}
	respondJSON(w, http.StatusOK, result)
}
