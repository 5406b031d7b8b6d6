package dto

import (
	"time"

	"minflow/internal/models"

	"github.com/shopspring/decimal"
)

// Expense Request DTOs

// CreateExpenseRequest represents the request payload for recording an
// expense. Unit and PerUnitCost must be positive; the total is derived
// server-side and never accepted from clients.
type CreateExpenseRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=255"`
	CategoryID  uint            `json:"category_id" validate:"required"`
	Unit        decimal.Decimal `json:"unit" validate:"required,decimal_positive"`
	PerUnitCost decimal.Decimal `json:"per_unit_cost" validate:"required,decimal_positive"`
	ExpenseDate time.Time       `json:"expense_date"`
}

// Expense Response DTOs

// ExpenseListResponse represents a paginated list of expenses, newest
// expense date first
type ExpenseListResponse struct {
	Expenses []models.Expense `json:"expenses"`
	Total    int64            `json:"total"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}

// DateRange marks the span of a user's recorded expenses
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// CategoryExpense aggregates spending within one category
type CategoryExpense struct {
	CategoryID   uint            `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Total        decimal.Decimal `json:"total"`
	Count        int64           `json:"count"`
}

// DailyExpense aggregates spending on one calendar day
type DailyExpense struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// AnalyticsResult is the full analytics payload for a date range
type AnalyticsResult struct {
	TotalExpenses     decimal.Decimal   `json:"total_expenses"`
	ExpenseCount      int64             `json:"expense_count"`
	ByCategory        []CategoryExpense `json:"by_category"`
	DailyExpenses     []DailyExpense    `json:"daily_expenses"`
	AverageDailySpend decimal.Decimal   `json:"average_daily_spend"`
	DateRange         DateRange         `json:"date_range"`
}
