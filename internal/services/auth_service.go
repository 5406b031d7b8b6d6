package services

import (
	"errors"
	"fmt"
	"log/slog"

	"minflow/internal/dto"
	"minflow/internal/models"
	"minflow/internal/repositories"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo        repositories.UserRepositoryInterface
	passwordService PasswordServiceInterface
	tokenService    TokenServiceInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	passwordService PasswordServiceInterface,
	tokenService TokenServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		metrics:         metrics,
		logger:          logger,
	}
}

// Signup creates a new user account and returns an access token with the
// created user
func (s *AuthService) Signup(req *dto.SignupRequest) (*dto.AuthData, error) {
	existingUser, err := s.userRepo.GetByEmail(req.Email)
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if existingUser != nil {
		s.recordAuthEvent("signup_duplicate_email")
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := s.passwordService.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Name:         req.Name,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, _, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.recordAuthEvent("signup_success")
	s.logger.Info("user signed up", "user_id", user.ID, "email", user.Email)

	return &dto.AuthData{Token: token, User: user}, nil
}

// Login authenticates a user and returns an access token with the user
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthData, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.recordAuthEvent("login_unknown_email")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !s.passwordService.ComparePassword(req.Password, user.PasswordHash) {
		s.recordAuthEvent("login_invalid_password")
		return nil, ErrInvalidCredentials
	}

	token, _, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.recordAuthEvent("login_success")
	s.logger.Info("user logged in", "user_id", user.ID, "email", user.Email)

	return &dto.AuthData{Token: token, User: user}, nil
}

func (s *AuthService) recordAuthEvent(eventType string) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncrementCounter("authentication_event", map[string]string{
		"event_type": eventType,
	})
}
