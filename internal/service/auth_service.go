package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"binakata/internal/models"
	"binakata/internal/repository"
	"binakata/internal/security"
	"binakata/internal/validation"
)

// AuthService handles parent registration and login
type AuthService struct {
	userRepo *repository.UserRepository
	tokens   *security.TokenIssuer
	email    *EmailService
	logger   *slog.Logger
}

// NewAuthService creates a new auth service. email may be nil.
func NewAuthService(userRepo *repository.UserRepository, tokens *security.TokenIssuer, email *EmailService, logger *slog.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		email:    email,
		logger:   logger,
	}
}

// Credentials is the body of register and login requests
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is returned by a successful register or login
type AuthResult struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *models.User `json:"-"`
}

// Register creates a parent account and returns a token for it
func (s *AuthService) Register(ctx context.Context, in Credentials) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.CreateUser(ctx, email, hash)
	if err != nil {
		// A concurrent registration can win the race to the unique index
		if again, lookupErr := s.userRepo.GetUserByEmail(ctx, email); lookupErr == nil && again != nil {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.logger.Info("parent registered", "user_id", user.ID)

	if s.email != nil && s.email.IsEnabled() {
		go func() {
			sendCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := s.email.SendWelcomeEmail(sendCtx, email); err != nil {
				s.logger.Warn("welcome email failed", "user_id", user.ID, "error", err)
			}
		}()
	}

	return s.issue(user)
}

// Login checks credentials and returns a fresh token
func (s *AuthService) Login(ctx context.Context, in Credentials) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !security.CheckPassword(user.PasswordHash, in.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// Authenticate resolves a bearer token to its user ID
func (s *AuthService) Authenticate(token string) (int64, error) {
	return s.tokens.Verify(token)
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	}, nil
}
