package repositories

import (
	"testing"
	"time"

	"minflow/internal/database"
	"minflow/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// newTestExpense builds an expense with string decimal amounts for fixtures
func newTestExpense(userID, categoryID uint, name, unit, perUnitCost string) *models.Expense {
	return &models.Expense{
		Name:        name,
		CategoryID:  categoryID,
		UserID:      userID,
		Unit:        decimal.RequireFromString(unit),
		PerUnitCost: decimal.RequireFromString(perUnitCost),
		ExpenseDate: time.Now(),
	}
}

func TestExpenseRepository(t *testing.T) {
	suite.Run(t, new(ExpenseRepositorySuite))
}

type ExpenseRepositorySuite struct {
	suite.Suite
	db         *database.DB
	repo       ExpenseRepositoryInterface
	user       *models.User
	categories []models.Category
}

func (s *ExpenseRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewExpenseRepository(s.db.DB)
	s.user = database.CreateTestUser(s.T(), s.db, "test@example.com")
	s.categories = database.SeedTestCategories(s.T(), s.db)
}

func (s *ExpenseRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *ExpenseRepositorySuite) createExpenseOn(name string, categoryID uint, total string, date time.Time) *models.Expense {
	expense := &models.Expense{
		Name:        name,
		CategoryID:  categoryID,
		UserID:      s.user.ID,
		Unit:        decimal.NewFromInt(1),
		PerUnitCost: decimal.RequireFromString(total),
		ExpenseDate: date,
	}
	s.Require().NoError(s.repo.Create(expense))
	return expense
}

func (s *ExpenseRepositorySuite) TestExpenseRepository_Create() {
	expense := newTestExpense(s.user.ID, s.categories[0].ID, "Groceries", "2", "15.25")

	err := s.repo.Create(expense)
	s.NoError(err)
	s.NotZero(expense.ID)

	// Total derived from unit and per-unit cost
	s.True(expense.Total.Equal(decimal.RequireFromString("30.50")))

	// Category relationship loaded for response payloads
	s.Require().NotNil(expense.Category)
	s.Equal(s.categories[0].Name, expense.Category.Name)
}

func (s *ExpenseRepositorySuite) TestExpenseRepository_Create_RejectsNonPositiveAmounts() {
	expense := newTestExpense(s.user.ID, s.categories[0].ID, "Bad", "0", "10.00")
	s.Error(s.repo.Create(expense))

	expense = newTestExpense(s.user.ID, s.categories[0].ID, "Bad", "1", "-5.00")
	s.Error(s.repo.Create(expense))
}

func (s *ExpenseRepositorySuite) TestExpenseRepository_GetByID_OwnerScoped() {
	expense := s.createExpenseOn("Coffee", s.categories[0].ID, "3.50", time.Now())

	found, err := s.repo.GetByID(expense.ID, s.user.ID)
	s.NoError(err)
	s.Equal(expense.ID, found.ID)
	s.NotNil(found.Category)

	otherUser := database.CreateTestUser(s.T(), s.db, "other@example.com")
	_, err = s.repo.GetByID(expense.ID, otherUser.ID)
	s.Equal(ErrExpenseNotFound, err)
}

func (s *ExpenseRepositorySuite) TestExpenseRepository_GetByUser_NewestFirst() {
	now := time.Now()
	s.createExpenseOn("Oldest", s.categories[0].ID, "10.00", now.AddDate(0, 0, -2))
	s.createExpenseOn("Newest", s.categories[0].ID, "20.00", now)
	s.createExpenseOn("Middle", s.categories[0].ID, "15.00", now.AddDate(0, 0, -1))

	expenses, total, err := s.repo.GetByUser(s.user.ID, 0, 10)
	s.NoError(err)
	s.Equal(int64(3), total)
	s.Require().Len(expenses, 3)
	s.Equal("Newest", expenses[0].Name)
	s.Equal("Middle", expenses[1].Name)
	s.Equal("Oldest", expenses[2].Name)
}

func (s *ExpenseRepositorySuite) TestExpenseRepository_GetByUser_Pagination() {
	now := time.Now()
	for i := 0; i < 5; i++ {
		s.createExpenseOn("Expense", s.categories[0].ID, "5.00", now.AddDate(0, 0, -i))
	}

	expenses, total, err := s.repo.GetByUser(s.user.ID, 3, 3)
	s.NoError(err)
	s.Equal(int64(5), total)
	s.Len(expenses, 2)
}

func (s *ExpenseRepositorySuite) TestExpenseRepository_Delete() {
	expense := s.createExpenseOn("Doomed", s.categories[0].ID, "9.99", time.Now())

	err := s.repo.Delete(expense.ID, s.user.ID)
	s.NoError(err)

	_, err = s.repo.GetByID(expense.ID, s.user.ID)
	s.Equal(ErrExpenseNotFound, err)

	// Already deleted
	err = s.repo.Delete(expense.ID, s.user.ID)
	s.Equal(ErrExpenseNotFound, err)
}

func (s *ExpenseRepositorySuite) TestExpenseRepository_Delete_OwnerScoped() {
	expense := s.createExpenseOn("Mine", s.categories[0].ID, "9.99", time.Now())

	otherUser := database.CreateTestUser(s.T(), s.db, "other@example.com")
	err := s.repo.Delete(expense.ID, otherUser.ID)
	s.Equal(ErrExpenseNotFound, err)

	// Still present for the owner
	_, err = s.repo.GetByID(expense.ID, s.user.ID)
	s.NoError(err)
}

func (s *ExpenseRepositorySuite) TestExpenseRepository_ExpenseDates() {
	_, err := s.repo.FirstExpenseDate(s.user.ID)
	s.Equal(ErrNoExpenses, err)

	now := time.Now().Truncate(time.Second)
	s.createExpenseOn("First", s.categories[0].ID, "1.00", now.AddDate(0, 0, -10))
	s.createExpenseOn("Last", s.categories[0].ID, "1.00", now)

	first, err := s.repo.FirstExpenseDate(s.user.ID)
	s.NoError(err)
	s.WithinDuration(now.AddDate(0, 0, -10), first, time.Second)

	last, err := s.repo.LastExpenseDate(s.user.ID)
	s.NoError(err)
	s.WithinDuration(now, last, time.Second)
}

func (s *ExpenseRepositorySuite) TestExpenseRepository_SumAndCount() {
	now := time.Now()
	s.createExpenseOn("A", s.categories[0].ID, "100.00", now.AddDate(0, 0, -3))
	s.createExpenseOn("B", s.categories[1].ID, "25.00", now.AddDate(0, 0, -1))
	s.createExpenseOn("Outside", s.categories[0].ID, "999.00", now.AddDate(0, 0, -30))

	start := now.AddDate(0, 0, -7)
	total, count, err := s.repo.SumAndCount(s.user.ID, start, now)
	s.NoError(err)
	s.Equal(int64(2), count)
	s.True(total.Equal(decimal.RequireFromString("125")), "got %s", total)
}

func (s *ExpenseRepositorySuite) TestExpenseRepository_CategoryTotals() {
	now := time.Now()
	s.createExpenseOn("Groceries", s.categories[0].ID, "125.00", now.AddDate(0, 0, -2))
	s.createExpenseOn("Bus", s.categories[1].ID, "375.00", now.AddDate(0, 0, -1))

	totals, err := s.repo.CategoryTotals(s.user.ID, now.AddDate(0, 0, -7), now)
	s.NoError(err)
	s.Require().Len(totals, 2)

	// Highest total first
	s.Equal(s.categories[1].ID, totals[0].CategoryID)
	s.True(totals[0].Total.Equal(decimal.RequireFromString("375")))
	s.Equal(s.categories[0].ID, totals[1].CategoryID)
	s.True(totals[1].Total.Equal(decimal.RequireFromString("125")))
}

func (s *ExpenseRepositorySuite) TestExpenseRepository_DailyTotals() {
	now := time.Now()
	s.createExpenseOn("A", s.categories[0].ID, "10.00", now.AddDate(0, 0, -1))
	s.createExpenseOn("B", s.categories[0].ID, "5.00", now.AddDate(0, 0, -1))
	s.createExpenseOn("C", s.categories[0].ID, "7.00", now)

	totals, err := s.repo.DailyTotals(s.user.ID, now.AddDate(0, 0, -7), now)
	s.NoError(err)
	s.Require().Len(totals, 2)

	// Oldest day first, same-day expenses summed
	s.True(totals[0].Total.Equal(decimal.RequireFromString("15")))
	s.True(totals[1].Total.Equal(decimal.RequireFromString("7")))
}
