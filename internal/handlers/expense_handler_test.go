package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"minflow/internal/dto"
	"minflow/internal/models"
	"minflow/internal/services"
	"minflow/internal/services/service_mocks"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestExpenseHandler(t *testing.T) {
	suite.Run(t, new(ExpenseHandlerSuite))
}

type ExpenseHandlerSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	expenseService *service_mocks.MockExpenseServiceInterface
	handler        *ExpenseHandler
	e              *echo.Echo
}

func (s *ExpenseHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.expenseService = service_mocks.NewMockExpenseServiceInterface(s.ctrl)
	s.handler = NewExpenseHandler(s.expenseService)
	s.e = echo.New()
	s.e.Validator = NewValidator()
}

func (s *ExpenseHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ExpenseHandlerSuite) newContext(method, target string, body interface{}, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	var reader *bytes.Buffer
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	if userID != 0 {
		c.Set("user_id", userID)
	}
	return c, rec
}

func (s *ExpenseHandlerSuite) TestCreate_Success() {
	reqBody := map[string]interface{}{
		"name":          gofakeit.ProductName(),
		"category_id":   1,
		"unit":          "2",
		"per_unit_cost": "15.25",
	}

	created := &models.Expense{
		ID:          5,
		Name:        reqBody["name"].(string),
		CategoryID:  1,
		UserID:      1,
		Unit:        decimal.NewFromInt(2),
		PerUnitCost: decimal.RequireFromString("15.25"),
		Total:       decimal.RequireFromString("30.50"),
	}

	s.expenseService.EXPECT().Create(uint(1), gomock.Any()).Return(created, nil).Times(1)

	c, rec := s.newContext(http.MethodPost, "/api/expenses", reqBody, 1)
	s.NoError(s.handler.Create(c))
	s.Equal(http.StatusCreated, rec.Code)

	var response struct {
		Success bool           `json:"success"`
		Data    models.Expense `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.True(response.Success)
	s.True(response.Data.Total.Equal(decimal.RequireFromString("30.50")))
}

func (s *ExpenseHandlerSuite) TestCreate_NonPositiveAmount() {
	reqBody := map[string]interface{}{
		"name":          "Bad expense",
		"category_id":   1,
		"unit":          "0",
		"per_unit_cost": "10",
	}

	c, rec := s.newContext(http.MethodPost, "/api/expenses", reqBody, 1)
	s.NoError(s.handler.Create(c))
	s.Equal(http.StatusBadRequest, rec.Code)

	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("EXPENSE_003", response.Code)
}

func (s *ExpenseHandlerSuite) TestCreate_UnknownCategory() {
	reqBody := map[string]interface{}{
		"name":          "Mystery",
		"category_id":   99,
		"unit":          "1",
		"per_unit_cost": "10",
	}

	s.expenseService.EXPECT().Create(uint(1), gomock.Any()).Return(nil, services.ErrCategoryNotFound).Times(1)

	c, rec := s.newContext(http.MethodPost, "/api/expenses", reqBody, 1)
	s.NoError(s.handler.Create(c))
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ExpenseHandlerSuite) TestCreate_Unauthenticated() {
	c, rec := s.newContext(http.MethodPost, "/api/expenses", map[string]interface{}{}, 0)
	s.NoError(s.handler.Create(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *ExpenseHandlerSuite) TestList_Success() {
	result := &dto.ExpenseListResponse{
		Expenses: []models.Expense{
			{ID: 2, Name: "Coffee", UserID: 1},
			{ID: 1, Name: "Lunch", UserID: 1},
		},
		Total:  2,
		Limit:  20,
		Offset: 0,
	}

	s.expenseService.EXPECT().List(uint(1), 0, 20).Return(result, nil).Times(1)

	c, rec := s.newContext(http.MethodGet, "/api/expenses", nil, 1)
	s.NoError(s.handler.List(c))
	s.Equal(http.StatusOK, rec.Code)

	var response ListResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.True(response.Success)
	s.Equal(int64(2), response.Total)
	s.Equal(20, response.Limit)
}

func (s *ExpenseHandlerSuite) TestList_ClampsLimit() {
	s.expenseService.EXPECT().List(uint(1), 0, 100).Return(&dto.ExpenseListResponse{Limit: 100}, nil).Times(1)

	c, rec := s.newContext(http.MethodGet, "/api/expenses?limit=5000", nil, 1)
	s.NoError(s.handler.List(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ExpenseHandlerSuite) TestGet_NotFound() {
	s.expenseService.EXPECT().Get(uint(99), uint(1)).Return(nil, services.ErrExpenseNotFound).Times(1)

	c, rec := s.newContext(http.MethodGet, "/api/expenses/99", nil, 1)
	c.SetParamNames("id")
	c.SetParamValues("99")

	s.NoError(s.handler.Get(c))
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ExpenseHandlerSuite) TestGet_InvalidID() {
	c, rec := s.newContext(http.MethodGet, "/api/expenses/abc", nil, 1)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	s.NoError(s.handler.Get(c))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ExpenseHandlerSuite) TestDelete_Success() {
	s.expenseService.EXPECT().Delete(uint(5), uint(1)).Return(nil).Times(1)

	c, rec := s.newContext(http.MethodDelete, "/api/expenses/5", nil, 1)
	c.SetParamNames("id")
	c.SetParamValues("5")

	s.NoError(s.handler.Delete(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ExpenseHandlerSuite) TestDateRange_NoExpenses() {
	s.expenseService.EXPECT().DateRange(uint(1)).Return(nil, services.ErrNoExpenses).Times(1)

	c, rec := s.newContext(http.MethodGet, "/api/expenses/date-range", nil, 1)
	s.NoError(s.handler.DateRange(c))
	s.Equal(http.StatusNotFound, rec.Code)

	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("no expenses found", response.Error)
}

func (s *ExpenseHandlerSuite) TestAnalytics_Success() {
	result := &dto.AnalyticsResult{
		TotalExpenses: decimal.RequireFromString("500.00"),
		ExpenseCount:  4,
		ByCategory: []dto.CategoryExpense{
			{CategoryID: 1, CategoryName: models.CategoryFoodDining, Total: decimal.RequireFromString("375.00"), Count: 3},
		},
		DailyExpenses:     []dto.DailyExpense{{Date: "2026-01-01", Total: decimal.RequireFromString("500.00")}},
		AverageDailySpend: decimal.RequireFromString("50.00"),
		DateRange: dto.DateRange{
			Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC),
		},
	}

	s.expenseService.EXPECT().Analytics(uint(1), "2026-01-01", "2026-01-10").Return(result, nil).Times(1)

	c, rec := s.newContext(http.MethodGet, "/api/expenses/analytics?start_date=2026-01-01&end_date=2026-01-10", nil, 1)
	s.NoError(s.handler.Analytics(c))
	s.Equal(http.StatusOK, rec.Code)

	var response struct {
		Success bool                `json:"success"`
		Data    dto.AnalyticsResult `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.True(response.Data.TotalExpenses.Equal(decimal.RequireFromString("500.00")))
	s.Equal(int64(4), response.Data.ExpenseCount)
}

func (s *ExpenseHandlerSuite) TestAnalytics_MissingDates() {
	s.expenseService.EXPECT().Analytics(uint(1), "", "").Return(nil, services.ErrDatesRequired).Times(1)

	c, rec := s.newContext(http.MethodGet, "/api/expenses/analytics", nil, 1)
	s.NoError(s.handler.Analytics(c))
	s.Equal(http.StatusBadRequest, rec.Code)

	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Contains(response.Error, "start_date and end_date are required")
}
