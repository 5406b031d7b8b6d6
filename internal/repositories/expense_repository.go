package repositories

import (
	"errors"
	"fmt"
	"time"

	"minflow/internal/dto"
	"minflow/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrNoExpenses      = errors.New("no expenses found")
)

// ExpenseRepository handles database operations for expenses
type ExpenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) ExpenseRepositoryInterface {
	return &ExpenseRepository{
		db: db,
	}
}

// Create creates a new expense in the database
func (r *ExpenseRepository) Create(expense *models.Expense) error {
	if expense == nil {
		return errors.New("expense cannot be nil")
	}

	if err := r.db.Create(expense).Error; err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	// Reload with the category relationship for response payloads
	if err := r.db.Preload("Category").First(expense, expense.ID).Error; err != nil {
		return fmt.Errorf("failed to reload expense: %w", err)
	}

	return nil
}

// GetByID retrieves a single expense owned by the user
func (r *ExpenseRepository) GetByID(id, userID uint) (*models.Expense, error) {
	var expense models.Expense

	err := r.db.
		Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&expense).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return &expense, nil
}

// GetByUser retrieves a user's expenses, newest expense date first
func (r *ExpenseRepository) GetByUser(userID uint, offset, limit int) ([]models.Expense, int64, error) {
	var expenses []models.Expense
	var total int64

	if err := r.db.Model(&models.Expense{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	err := r.db.
		Preload("Category").
		Where("user_id = ?", userID).
		Order("expense_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&expenses).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}

	return expenses, total, nil
}

// Delete soft deletes an expense owned by the user
func (r *ExpenseRepository) Delete(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Expense{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete expense: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

// FirstExpenseDate returns the earliest expense date recorded by the user
func (r *ExpenseRepository) FirstExpenseDate(userID uint) (time.Time, error) {
	var expense models.Expense

	err := r.db.
		Where("user_id = ?", userID).
		Order("expense_date ASC").
		First(&expense).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, ErrNoExpenses
		}
		return time.Time{}, fmt.Errorf("failed to get first expense date: %w", err)
	}

	return expense.ExpenseDate, nil
}

// LastExpenseDate returns the latest expense date recorded by the user
func (r *ExpenseRepository) LastExpenseDate(userID uint) (time.Time, error) {
	var expense models.Expense

	err := r.db.
		Where("user_id = ?", userID).
		Order("expense_date DESC").
		First(&expense).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, ErrNoExpenses
		}
		return time.Time{}, fmt.Errorf("failed to get last expense date: %w", err)
	}

	return expense.ExpenseDate, nil
}

// SumAndCount returns the total spend and expense count within the range
func (r *ExpenseRepository) SumAndCount(userID uint, start, end time.Time) (decimal.Decimal, int64, error) {
	var row struct {
		Total decimal.Decimal
		Count int64
	}

	err := r.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(total), 0) as total, COUNT(*) as count").
		Where("user_id = ? AND expense_date BETWEEN ? AND ?", userID, start, end).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("failed to sum expenses: %w", err)
	}

	return row.Total, row.Count, nil
}

// CategoryTotals aggregates spend per category within the range, highest
// total first
func (r *ExpenseRepository) CategoryTotals(userID uint, start, end time.Time) ([]dto.CategoryExpense, error) {
	var totals []dto.CategoryExpense

	err := r.db.Model(&models.Expense{}).
		Select("categories.id as category_id, categories.name as category_name, COALESCE(SUM(expenses.total), 0) as total, COUNT(expenses.id) as count").
		Joins("LEFT JOIN categories ON categories.id = expenses.category_id").
		Where("expenses.user_id = ? AND expenses.expense_date BETWEEN ? AND ?", userID, start, end).
		Group("categories.id, categories.name").
		Order("total DESC").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate category totals: %w", err)
	}

	return totals, nil
}

// DailyTotals aggregates spend per calendar day within the range, oldest
// day first
func (r *ExpenseRepository) DailyTotals(userID uint, start, end time.Time) ([]dto.DailyExpense, error) {
	var totals []dto.DailyExpense

	err := r.db.Model(&models.Expense{}).
		Select("DATE(expense_date) as date, COALESCE(SUM(total), 0) as total").
		Where("user_id = ? AND expense_date BETWEEN ? AND ?", userID, start, end).
		Group("DATE(expense_date)").
		Order("date ASC").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily totals: %w", err)
	}

	return totals, nil
}
