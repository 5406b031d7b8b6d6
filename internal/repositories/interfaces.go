package repositories

import (
	"time"

	"minflow/internal/dto"
	"minflow/internal/models"

	"github.com/shopspring/decimal"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	ListUsers(offset, limit int) ([]*models.User, int64, error)
	CountExpensesByUserID(userID uint) (int64, error)
}

// CategoryRepositoryInterface defines the contract for category repository operations
type CategoryRepositoryInterface interface {
	Create(category *models.Category) error
	GetByID(id uint) (*models.Category, error)
	GetVisibleByID(id, userID uint) (*models.Category, error)
	ListVisibleToUser(userID uint) ([]models.Category, int64, error)
	ExistsDefaultByName(name string) (bool, error)
	DeleteUserCategory(id, userID uint) error
}

// ExpenseRepositoryInterface defines the contract for expense repository operations
type ExpenseRepositoryInterface interface {
	Create(expense *models.Expense) error
	GetByID(id, userID uint) (*models.Expense, error)
	GetByUser(userID uint, offset, limit int) ([]models.Expense, int64, error)
	Delete(id, userID uint) error
	FirstExpenseDate(userID uint) (time.Time, error)
	LastExpenseDate(userID uint) (time.Time, error)
	SumAndCount(userID uint, start, end time.Time) (decimal.Decimal, int64, error)
	CategoryTotals(userID uint, start, end time.Time) ([]dto.CategoryExpense, error)
	DailyTotals(userID uint, start, end time.Time) ([]dto.DailyExpense, error)
}
