package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"minflow/internal/dto"
	"minflow/internal/models"
	"minflow/internal/repositories"

	"github.com/shopspring/decimal"
)

const analyticsDateLayout = "2006-01-02"

var (
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrNoExpenses       = errors.New("no expenses found")
	ErrDatesRequired    = errors.New("start_date and end_date are required (format: YYYY-MM-DD)")
	ErrInvalidStartDate = errors.New("invalid start_date format (use YYYY-MM-DD)")
	ErrInvalidEndDate   = errors.New("invalid end_date format (use YYYY-MM-DD)")
	ErrEndBeforeStart   = errors.New("end_date must be after start_date")
	ErrFutureEndDate    = errors.New("end_date cannot be in the future")
)

// ExpenseService handles expense recording and analytics
type ExpenseService struct {
	expenseRepo  repositories.ExpenseRepositoryInterface
	categoryRepo repositories.CategoryRepositoryInterface
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
}

// NewExpenseService creates a new expense service
func NewExpenseService(
	expenseRepo repositories.ExpenseRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) ExpenseServiceInterface {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

// Create records a new expense. The referenced category must be visible to
// the user; the total is derived in the model's BeforeSave hook.
func (s *ExpenseService) Create(userID uint, req *dto.CreateExpenseRequest) (*models.Expense, error) {
	if _, err := s.categoryRepo.GetVisibleByID(req.CategoryID, userID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to verify category: %w", err)
	}

	expenseDate := req.ExpenseDate
	if expenseDate.IsZero() {
		expenseDate = time.Now()
	}

	expense := &models.Expense{
		Name:        req.Name,
		CategoryID:  req.CategoryID,
		UserID:      userID,
		Unit:        req.Unit,
		PerUnitCost: req.PerUnitCost,
		ExpenseDate: expenseDate,
	}

	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementCounter("expense_created", nil)
		s.metrics.RecordGauge("expense_amount", expense.Total.InexactFloat64(), nil)
	}
	s.logger.Info("expense created",
		"expense_id", expense.ID,
		"user_id", userID,
		"total", expense.Total.String())

	return expense, nil
}

// List returns a page of the user's expenses, newest expense date first
func (s *ExpenseService) List(userID uint, offset, limit int) (*dto.ExpenseListResponse, error) {
	expenses, total, err := s.expenseRepo.GetByUser(userID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	return &dto.ExpenseListResponse{
		Expenses: expenses,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}, nil
}

// Get returns a single expense owned by the user
func (s *ExpenseService) Get(id, userID uint) (*models.Expense, error) {
	expense, err := s.expenseRepo.GetByID(id, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrExpenseNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return expense, nil
}

// Delete soft deletes an expense owned by the user
func (s *ExpenseService) Delete(id, userID uint) error {
	if err := s.expenseRepo.Delete(id, userID); err != nil {
		if errors.Is(err, repositories.ErrExpenseNotFound) {
			return ErrExpenseNotFound
		}
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	s.logger.Info("expense deleted", "expense_id", id, "user_id", userID)

	return nil
}

// DateRange returns the span of the user's recorded expenses. The end is
// capped at today so future-dated entries don't push the range forward.
func (s *ExpenseService) DateRange(userID uint) (*dto.DateRange, error) {
	first, err := s.expenseRepo.FirstExpenseDate(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNoExpenses) {
			return nil, ErrNoExpenses
		}
		return nil, fmt.Errorf("failed to get date range: %w", err)
	}

	last, err := s.expenseRepo.LastExpenseDate(userID)
	if err != nil && !errors.Is(err, repositories.ErrNoExpenses) {
		return nil, fmt.Errorf("failed to get date range: %w", err)
	}

	today := time.Now()
	if last.After(today) {
		last = today
	}

	return &dto.DateRange{
		Start: first,
		End:   last,
	}, nil
}

// Analytics aggregates the user's spending within a date range. Dates are
// YYYY-MM-DD; the end date is inclusive through end of day.
func (s *ExpenseService) Analytics(userID uint, startDate, endDate string) (*dto.AnalyticsResult, error) {
	start, end, err := parseAnalyticsRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	total, count, err := s.expenseRepo.SumAndCount(userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate totals: %w", err)
	}

	byCategory, err := s.expenseRepo.CategoryTotals(userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate category totals: %w", err)
	}

	daily, err := s.expenseRepo.DailyTotals(userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily totals: %w", err)
	}

	result := &dto.AnalyticsResult{
		TotalExpenses:     total,
		ExpenseCount:      count,
		ByCategory:        byCategory,
		DailyExpenses:     daily,
		AverageDailySpend: averageDailySpend(total, start, end),
		DateRange: dto.DateRange{
			Start: start,
			End:   end,
		},
	}

	return result, nil
}

func parseAnalyticsRange(startDate, endDate string) (time.Time, time.Time, error) {
	if startDate == "" || endDate == "" {
		return time.Time{}, time.Time{}, ErrDatesRequired
	}

	start, err := time.Parse(analyticsDateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidStartDate
	}

	end, err := time.Parse(analyticsDateLayout, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidEndDate
	}

	// End date inclusive through end of day
	end = end.Add(23*time.Hour + 59*time.Minute + 59*time.Second)

	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrEndBeforeStart
	}

	if end.After(time.Now()) {
		return time.Time{}, time.Time{}, ErrFutureEndDate
	}

	return start, end, nil
}

func averageDailySpend(total decimal.Decimal, start, end time.Time) decimal.Decimal {
	days := end.Sub(start).Hours() / 24
	if days <= 0 || !total.IsPositive() {
		return decimal.Zero
	}

	return total.DivRound(decimal.NewFromFloat(days), 2)
}
