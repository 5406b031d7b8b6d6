package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"minflow/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type APIClientTestSuite struct {
	suite.Suite
}

func TestAPIClientTestSuite(t *testing.T) {
	suite.Run(t, new(APIClientTestSuite))
}

func (s *APIClientTestSuite) TestLogin_DecodesEnvelope() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPost, r.Method)
		s.Equal("/api/auth/login", r.URL.Path)
		s.Equal("application/json", r.Header.Get("Content-Type"))

		var req dto.LoginRequest
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&req))
		s.Equal("user@example.com", req.Email)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"token":"jwt-token","user":{"id":1,"email":"user@example.com","name":"User"}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL + "/api")
	data, err := client.Login(context.Background(), "user@example.com", "password")

	s.Require().NoError(err)
	s.Equal("jwt-token", data.Token)
	s.Equal(uint(1), data.User.ID)
}

func (s *APIClientTestSuite) TestBearerTokenAttached() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("Bearer jwt-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[],"total":0}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("jwt-token")

	_, err := client.ListCategories(context.Background())
	s.NoError(err)
}

func (s *APIClientTestSuite) TestNoTokenNoAuthorizationHeader() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Empty(r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("jwt-token")
	client.ClearToken()

	_, err := client.ListCategories(context.Background())
	s.NoError(err)
}

func (s *APIClientTestSuite) TestErrorEnvelopeMessageSurfaced() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"error":"invalid email or password","code":"AUTH_001"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Login(context.Background(), "user@example.com", "wrong")

	s.Require().Error(err)
	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusUnauthorized, apiErr.StatusCode)
	s.Equal("invalid email or password", apiErr.Message)
	s.Equal("AUTH_001", apiErr.Code)
}

func (s *APIClientTestSuite) TestErrorWithoutEnvelopeFallsBackToGenericMessage() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.ListCategories(context.Background())

	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusBadGateway, apiErr.StatusCode)
	s.Contains(apiErr.Message, "502")
}

func (s *APIClientTestSuite) TestListExpenses_PaginationAndMeta() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/expenses", r.URL.Path)
		s.Equal("20", r.URL.Query().Get("limit"))
		s.Equal("40", r.URL.Query().Get("offset"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":1,"name":"Coffee","total":"4.50"}],"total":41,"limit":20,"offset":40}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	page, err := client.ListExpenses(context.Background(), 20, 40)

	s.Require().NoError(err)
	s.Len(page.Expenses, 1)
	s.Equal("Coffee", page.Expenses[0].Name)
	s.Equal(int64(41), page.Total)
	s.Equal(20, page.Limit)
	s.Equal(40, page.Offset)
}

func (s *APIClientTestSuite) TestCreateExpense_ReturnsServerTotal() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req dto.CreateExpenseRequest
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&req))
		s.Equal("Coffee", req.Name)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":7,"name":"Coffee","total":"9.00"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	expense, err := client.CreateExpense(context.Background(), &dto.CreateExpenseRequest{
		Name:        "Coffee",
		CategoryID:  1,
		Unit:        decimal.NewFromInt(2),
		PerUnitCost: decimal.NewFromFloat(4.50),
	})

	s.Require().NoError(err)
	s.Equal(uint(7), expense.ID)
	s.Equal("9.00", expense.Total.StringFixed(2))
}

func (s *APIClientTestSuite) TestDeleteExpense() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodDelete, r.Method)
		s.Equal("/expenses/7", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"Expense deleted"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	s.NoError(client.DeleteExpense(context.Background(), 7))
}

func (s *APIClientTestSuite) TestAnalytics_QueryParams() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/expenses/analytics", r.URL.Path)
		s.Equal("2026-01-01", r.URL.Query().Get("start_date"))
		s.Equal("2026-01-31", r.URL.Query().Get("end_date"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"total_expenses":"500","expense_count":4,"average_daily_spend":"16.13"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.Analytics(context.Background(), "2026-01-01", "2026-01-31")

	s.Require().NoError(err)
	s.Equal("500.00", result.TotalExpenses.StringFixed(2))
	s.Equal(int64(4), result.ExpenseCount)
}

func (s *APIClientTestSuite) TestExtract_PassesThroughUpstreamEnvelope() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/expenses/extract", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"output_data":{"expenses":[{"amount":20,"category":"food","description":"lunch"}],"total_amount":20,"currency":"USD"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.Extract(context.Background(), &dto.ExtractRequest{
		InputData: dto.ExtractInputData{Paragraph: "spent 20 on lunch"},
	})

	s.Require().NoError(err)
	s.True(resp.Success)
	s.Require().NotNil(resp.OutputData)
	s.Len(resp.OutputData.Expenses, 1)
}

func (s *APIClientTestSuite) TestExtract_UpstreamErrorSurfaced() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"success":false,"error":"upstream overloaded"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Extract(context.Background(), &dto.ExtractRequest{
		InputData: dto.ExtractInputData{Paragraph: "spent 20"},
	})

	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusBadGateway, apiErr.StatusCode)
	s.Equal("upstream overloaded", apiErr.Message)
}

func (s *APIClientTestSuite) TestBaseURLTrailingSlashTrimmed() {
	client := NewClient("http://localhost:8080/api/")
	s.Equal("http://localhost:8080/api", client.baseURL)
}
