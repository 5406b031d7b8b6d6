package services

import (
	"log/slog"
	"testing"
	"time"

	"minflow/internal/dto"
	"minflow/internal/models"
	"minflow/internal/repositories"
	"minflow/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ExpenseServiceTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	expenseRepo  *repository_mocks.MockExpenseRepositoryInterface
	categoryRepo *repository_mocks.MockCategoryRepositoryInterface
	service      ExpenseServiceInterface
}

func (s *ExpenseServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.expenseRepo = repository_mocks.NewMockExpenseRepositoryInterface(s.ctrl)
	s.categoryRepo = repository_mocks.NewMockCategoryRepositoryInterface(s.ctrl)
	s.service = NewExpenseService(s.expenseRepo, s.categoryRepo, nil, slog.Default())
}

func (s *ExpenseServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestExpenseServiceSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}

func (s *ExpenseServiceTestSuite) TestCreate_Success() {
	userID := uint(1)
	req := &dto.CreateExpenseRequest{
		Name:        "Weekly groceries",
		CategoryID:  1,
		Unit:        decimal.NewFromInt(2),
		PerUnitCost: decimal.RequireFromString("15.25"),
	}

	category := &models.Category{ID: 1, Name: models.CategoryFoodDining, IsDefault: true}

	s.categoryRepo.EXPECT().GetVisibleByID(uint(1), userID).Return(category, nil).Times(1)
	s.expenseRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(expense *models.Expense) error {
		expense.ID = 5
		expense.Total = expense.Unit.Mul(expense.PerUnitCost)
		return nil
	}).Times(1)

	expense, err := s.service.Create(userID, req)
	s.NoError(err)
	s.Equal(uint(5), expense.ID)
	s.Equal(userID, expense.UserID)
	s.True(expense.Total.Equal(decimal.RequireFromString("30.50")))
	s.False(expense.ExpenseDate.IsZero())
}

func (s *ExpenseServiceTestSuite) TestCreate_UnknownCategory() {
	req := &dto.CreateExpenseRequest{
		Name:        "Mystery",
		CategoryID:  99,
		Unit:        decimal.NewFromInt(1),
		PerUnitCost: decimal.NewFromInt(10),
	}

	s.categoryRepo.EXPECT().GetVisibleByID(uint(99), uint(1)).Return(nil, repositories.ErrCategoryNotFound).Times(1)

	expense, err := s.service.Create(1, req)
	s.Equal(ErrCategoryNotFound, err)
	s.Nil(expense)
}

func (s *ExpenseServiceTestSuite) TestCreate_KeepsProvidedDate() {
	userID := uint(1)
	expenseDate := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	req := &dto.CreateExpenseRequest{
		Name:        "Bus fare",
		CategoryID:  2,
		Unit:        decimal.NewFromInt(1),
		PerUnitCost: decimal.RequireFromString("2.75"),
		ExpenseDate: expenseDate,
	}

	category := &models.Category{ID: 2, Name: models.CategoryTransportation, IsDefault: true}

	s.categoryRepo.EXPECT().GetVisibleByID(uint(2), userID).Return(category, nil).Times(1)
	s.expenseRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)

	expense, err := s.service.Create(userID, req)
	s.NoError(err)
	s.Equal(expenseDate, expense.ExpenseDate)
}

func (s *ExpenseServiceTestSuite) TestList() {
	userID := uint(1)
	expenses := []models.Expense{
		{ID: 2, Name: "Coffee", UserID: userID},
		{ID: 1, Name: "Lunch", UserID: userID},
	}

	s.expenseRepo.EXPECT().GetByUser(userID, 0, 20).Return(expenses, int64(2), nil).Times(1)

	result, err := s.service.List(userID, 0, 20)
	s.NoError(err)
	s.Len(result.Expenses, 2)
	s.Equal(int64(2), result.Total)
	s.Equal(20, result.Limit)
	s.Equal(0, result.Offset)
}

func (s *ExpenseServiceTestSuite) TestGet_NotFound() {
	s.expenseRepo.EXPECT().GetByID(uint(99), uint(1)).Return(nil, repositories.ErrExpenseNotFound).Times(1)

	expense, err := s.service.Get(99, 1)
	s.Equal(ErrExpenseNotFound, err)
	s.Nil(expense)
}

func (s *ExpenseServiceTestSuite) TestDelete_NotFound() {
	s.expenseRepo.EXPECT().Delete(uint(99), uint(1)).Return(repositories.ErrExpenseNotFound).Times(1)

	err := s.service.Delete(99, 1)
	s.Equal(ErrExpenseNotFound, err)
}

func (s *ExpenseServiceTestSuite) TestDateRange_CapsFutureEnd() {
	userID := uint(1)
	first := time.Now().AddDate(0, -1, 0)
	future := time.Now().AddDate(0, 0, 7)

	s.expenseRepo.EXPECT().FirstExpenseDate(userID).Return(first, nil).Times(1)
	s.expenseRepo.EXPECT().LastExpenseDate(userID).Return(future, nil).Times(1)

	dateRange, err := s.service.DateRange(userID)
	s.NoError(err)
	s.Equal(first, dateRange.Start)
	s.False(dateRange.End.After(time.Now()))
}

func (s *ExpenseServiceTestSuite) TestDateRange_NoExpenses() {
	s.expenseRepo.EXPECT().FirstExpenseDate(uint(1)).Return(time.Time{}, repositories.ErrNoExpenses).Times(1)

	dateRange, err := s.service.DateRange(1)
	s.Equal(ErrNoExpenses, err)
	s.Nil(dateRange)
}

func (s *ExpenseServiceTestSuite) TestAnalytics_Success() {
	userID := uint(1)
	total := decimal.RequireFromString("500.00")
	byCategory := []dto.CategoryExpense{
		{CategoryID: 1, CategoryName: models.CategoryFoodDining, Total: decimal.RequireFromString("375.00"), Count: 3},
		{CategoryID: 2, CategoryName: models.CategoryTransportation, Total: decimal.RequireFromString("125.00"), Count: 1},
	}
	daily := []dto.DailyExpense{
		{Date: "2026-01-01", Total: decimal.RequireFromString("250.00")},
		{Date: "2026-01-05", Total: decimal.RequireFromString("250.00")},
	}

	s.expenseRepo.EXPECT().SumAndCount(userID, gomock.Any(), gomock.Any()).Return(total, int64(4), nil).Times(1)
	s.expenseRepo.EXPECT().CategoryTotals(userID, gomock.Any(), gomock.Any()).Return(byCategory, nil).Times(1)
	s.expenseRepo.EXPECT().DailyTotals(userID, gomock.Any(), gomock.Any()).Return(daily, nil).Times(1)

	result, err := s.service.Analytics(userID, "2026-01-01", "2026-01-10")
	s.NoError(err)
	s.True(result.TotalExpenses.Equal(total))
	s.Equal(int64(4), result.ExpenseCount)
	s.Len(result.ByCategory, 2)
	s.Len(result.DailyExpenses, 2)

	// 10 full days minus the final second, rounded to 2 places
	s.True(result.AverageDailySpend.IsPositive())
	s.True(result.AverageDailySpend.LessThan(total))
}

func (s *ExpenseServiceTestSuite) TestAnalytics_MissingDates() {
	_, err := s.service.Analytics(1, "", "2026-01-10")
	s.Equal(ErrDatesRequired, err)

	_, err = s.service.Analytics(1, "2026-01-01", "")
	s.Equal(ErrDatesRequired, err)
}

func (s *ExpenseServiceTestSuite) TestAnalytics_MalformedDates() {
	_, err := s.service.Analytics(1, "01/02/2026", "2026-01-10")
	s.Equal(ErrInvalidStartDate, err)

	_, err = s.service.Analytics(1, "2026-01-01", "next tuesday")
	s.Equal(ErrInvalidEndDate, err)
}

func (s *ExpenseServiceTestSuite) TestAnalytics_EndBeforeStart() {
	_, err := s.service.Analytics(1, "2026-01-10", "2026-01-01")
	s.Equal(ErrEndBeforeStart, err)
}

func (s *ExpenseServiceTestSuite) TestAnalytics_FutureEndDate() {
	future := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	start := time.Now().AddDate(0, 0, -7).Format("2006-01-02")

	_, err := s.service.Analytics(1, start, future)
	s.Equal(ErrFutureEndDate, err)
}

func (s *ExpenseServiceTestSuite) TestAnalytics_ZeroSpendHasZeroAverage() {
	userID := uint(1)

	s.expenseRepo.EXPECT().SumAndCount(userID, gomock.Any(), gomock.Any()).Return(decimal.Zero, int64(0), nil).Times(1)
	s.expenseRepo.EXPECT().CategoryTotals(userID, gomock.Any(), gomock.Any()).Return([]dto.CategoryExpense{}, nil).Times(1)
	s.expenseRepo.EXPECT().DailyTotals(userID, gomock.Any(), gomock.Any()).Return([]dto.DailyExpense{}, nil).Times(1)

	result, err := s.service.Analytics(userID, "2026-01-01", "2026-01-10")
	s.NoError(err)
	s.True(result.TotalExpenses.IsZero())
	s.True(result.AverageDailySpend.IsZero())
}

func TestAverageDailySpend(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 10)

	avg := averageDailySpend(decimal.RequireFromString("500.00"), start, end)
	if !avg.Equal(decimal.RequireFromString("50.00")) {
		t.Errorf("expected 50.00, got %s", avg)
	}

	if !averageDailySpend(decimal.Zero, start, end).IsZero() {
		t.Error("expected zero average for zero spend")
	}

	if !averageDailySpend(decimal.NewFromInt(100), start, start).IsZero() {
		t.Error("expected zero average for zero-length range")
	}
}
