package services

import (
	"errors"
	"fmt"
	"log/slog"

	"minflow/internal/models"
	"minflow/internal/repositories"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrCannotDeleteAdmin = errors.New("cannot delete admin user")
)

// UserService handles admin-only user management
type UserService struct {
	userRepo repositories.UserRepositoryInterface
	logger   *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepositoryInterface, logger *slog.Logger) UserServiceInterface {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ListUsers lists users with pagination
func (s *UserService) ListUsers(offset, limit int) ([]*models.User, int64, error) {
	users, total, err := s.userRepo.ListUsers(offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}

// GetUser returns a single user by ID
func (s *UserService) GetUser(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// DeleteUser soft deletes a user. Admin users cannot be deleted.
func (s *UserService) DeleteUser(id uint) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.IsAdmin {
		return ErrCannotDeleteAdmin
	}

	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("user deleted", "user_id", id)

	return nil
}
