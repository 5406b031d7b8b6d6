package handlers

import (
	"net/http"
	"time"

	"minflow/internal/repositories"
	"minflow/internal/services"

	"github.com/labstack/echo/v4"
)

// DevHandler handles development-only endpoints
// These endpoints should only be available in development environments
type DevHandler struct {
	expenseRepo  repositories.ExpenseRepositoryInterface
	categoryRepo repositories.CategoryRepositoryInterface
	generator    services.ExpenseGeneratorInterface
}

// NewDevHandler creates a new development handler
func NewDevHandler(
	expenseRepo repositories.ExpenseRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
) *DevHandler {
	return &DevHandler{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		generator:    services.NewExpenseGenerator(),
	}
}

// GenerateTestData seeds realistic historical expenses for the caller.
//
// Method: POST /api/dev/generate-test-data
// Query parameters:
//   - count: number of expenses to generate (default: 100, max: 1000)
//   - days: days of history to spread them over (default: 30, max: 365)
func (h *DevHandler) GenerateTestData(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	count := getIntParam(c, "count", 100)
	if count < 1 {
		count = 1
	}
	if count > 1000 {
		count = 1000
	}

	days := getIntParam(c, "days", 30)
	if days < 1 {
		days = 1
	}
	if days > 365 {
		days = 365
	}

	categories, _, err := h.categoryRepo.ListVisibleToUser(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load categories")
	}

	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	expenses := h.generator.GenerateHistoricalExpenses(userID, categories, startDate, endDate, count)

	created := 0
	for _, expense := range expenses {
		if err := h.expenseRepo.Create(expense); err != nil {
			continue
		}
		created++
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":          "test data generated successfully",
		"expenses_created": created,
		"date_range": map[string]string{
			"start": startDate.Format(time.RFC3339),
			"end":   endDate.Format(time.RFC3339),
		},
	})
}
