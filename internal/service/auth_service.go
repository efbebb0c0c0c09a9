package service

import (
	"errors"
	"log/slog"
	"time"

	"github.com/yourorg/vehiclecatalog/internal/domain"
	"github.com/yourorg/vehiclecatalog/internal/security/auth"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest accepted account password.
const MinPasswordLength = 5

// AuthService handles account creation and token issuance
type AuthService struct {
	userRepo domain.UserRepository
	tokens   *auth.TokenManager
	logger   *slog.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo domain.UserRepository, tokens *auth.TokenManager, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// TokenResult represents a token issuance response
type TokenResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateAccount registers a new user. The password is bcrypt-hashed before
// storage; the plaintext is never persisted.
func (s *AuthService) CreateAccount(username, password string) (*domain.User, error) {
	verr := &domain.ValidationError{}
	if username == "" {
		verr.Add("username", "this field is required")
	}
	if password == "" {
		verr.Add("password", "this field is required")
	} else if len(password) < MinPasswordLength {
		verr.Add("password", "must be at least 5 characters")
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	if existing, err := s.userRepo.GetByUsername(username); err == nil && existing != nil {
		return nil, domain.NewValidationError("username", "a user with that username already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, errors.New("failed to create account")
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
	}

	if err := s.userRepo.Create(user); err != nil {
		s.logger.Error("failed to create user", slog.String("error", err.Error()))
		return nil, errors.New("failed to create account")
	}

	s.logger.Info("account created",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// IssueToken authenticates a (username, password) pair and returns a bearer
// token bound to the user.
func (s *AuthService) IssueToken(username, password string) (*TokenResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		s.logger.Info("login attempt with unknown username", slog.String("username", username))
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("login failed with wrong password", slog.String("username", username))
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		s.logger.Error("failed to generate token",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		return nil, errors.New("failed to generate token")
	}

	s.logger.Info("user logged in",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return &TokenResult{Token: token, ExpiresAt: expiresAt}, nil
}

// Profile returns the identity of the given user.
func (s *AuthService) Profile(userID int64) (*domain.User, error) {
	return s.userRepo.GetByID(userID)
}
