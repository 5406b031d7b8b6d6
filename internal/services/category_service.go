package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"minflow/internal/dto"
	"minflow/internal/models"
	"minflow/internal/repositories"
)

var ErrCategoryNotFound = errors.New("category not found")

// CategoryService handles category business logic
type CategoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(
	categoryRepo repositories.CategoryRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) CategoryServiceInterface {
	return &CategoryService{
		categoryRepo: categoryRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

// ListForUser returns the shared defaults plus the user's own categories
func (s *CategoryService) ListForUser(userID uint) ([]models.Category, int64, error) {
	categories, total, err := s.categoryRepo.ListVisibleToUser(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, total, nil
}

// GetForUser returns a single category the user may reference
func (s *CategoryService) GetForUser(id, userID uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetVisibleByID(id, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

// CreateForUser creates a user-scoped category
func (s *CategoryService) CreateForUser(userID uint, req *dto.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		Name:   strings.TrimSpace(req.Name),
		UserID: &userID,
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementCounter("category_created", nil)
	}
	s.logger.Info("category created", "category_id", category.ID, "user_id", userID)

	return category, nil
}

// DeleteForUser soft deletes a user-scoped category. Shared defaults are
// never deletable.
func (s *CategoryService) DeleteForUser(id, userID uint) error {
	if err := s.categoryRepo.DeleteUserCategory(id, userID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.logger.Info("category deleted", "category_id", id, "user_id", userID)

	return nil
}
