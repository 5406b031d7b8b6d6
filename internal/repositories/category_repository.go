package repositories

import (
	"errors"
	"fmt"

	"minflow/internal/models"

	"gorm.io/gorm"
)

var ErrCategoryNotFound = errors.New("category not found")

// CategoryRepository handles database operations for categories
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepositoryInterface {
	return &CategoryRepository{
		db: db,
	}
}

// Create creates a new category in the database
func (r *CategoryRepository) Create(category *models.Category) error {
	if category == nil {
		return errors.New("category cannot be nil")
	}

	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// GetByID retrieves a category by its ID regardless of ownership
func (r *CategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by ID: %w", err)
	}

	return &category, nil
}

// GetVisibleByID retrieves a category that the user may reference: a shared
// default or one of the user's own
func (r *CategoryRepository) GetVisibleByID(id, userID uint) (*models.Category, error) {
	var category models.Category
	err := r.db.
		Where("id = ? AND (is_default = ? OR user_id = ?)", id, true, userID).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &category, nil
}

// ListVisibleToUser lists the shared defaults plus the user's own categories,
// defaults first in insertion order
func (r *CategoryRepository) ListVisibleToUser(userID uint) ([]models.Category, int64, error) {
	var categories []models.Category

	err := r.db.
		Where("is_default = ? OR user_id = ?", true, userID).
		Order("is_default DESC, id ASC").
		Find(&categories).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, int64(len(categories)), nil
}

// ExistsDefaultByName reports whether a default category with the given name
// is present
func (r *CategoryRepository) ExistsDefaultByName(name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Category{}).
		Where("name = ? AND is_default = ?", name, true).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check default category: %w", err)
	}

	return count > 0, nil
}

// DeleteUserCategory soft deletes a user-scoped category. Shared defaults
// cannot be deleted through this path.
func (r *CategoryRepository) DeleteUserCategory(id, userID uint) error {
	result := r.db.
		Where("id = ? AND user_id = ? AND is_default = ?", id, userID, false).
		Delete(&models.Category{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}
