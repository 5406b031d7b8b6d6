package handlers

import (
	"net/http"

	"minflow/internal/dto"
	"minflow/internal/errors"
	"minflow/internal/services"

	"github.com/labstack/echo/v4"
)

// ExpenseHandler handles expense recording and analytics endpoints
type ExpenseHandler struct {
	expenseService services.ExpenseServiceInterface
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService services.ExpenseServiceInterface) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
	}
}

// Create records a new expense for the caller
func (h *ExpenseHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithMessage("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ExpenseInvalidAmount)
	}

	expense, err := h.expenseService.Create(userID, &req)
	if err != nil {
		if err == services.ErrCategoryNotFound {
			return SendError(c, errors.CategoryNotFound)
		}
		return SendSystemError(c, err)
	}

	return SendSuccess(c, http.StatusCreated, expense)
}

// List returns the caller's expenses paginated, newest expense date first
func (h *ExpenseHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	offset, limit := getPagination(c)

	result, err := h.expenseService.List(userID, offset, limit)
	if err != nil {
		return SendSystemError(c, err)
	}

	return SendList(c, result.Expenses, result.Total, result.Limit, result.Offset)
}

// Get returns a single expense owned by the caller
func (h *ExpenseHandler) Get(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := getUintPathParam(c, "id")
	if err != nil {
		return SendError(c, errors.ExpenseInvalidID)
	}

	expense, err := h.expenseService.Get(id, userID)
	if err != nil {
		if err == services.ErrExpenseNotFound {
			return SendError(c, errors.ExpenseNotFound)
		}
		return SendSystemError(c, err)
	}

	return SendSuccess(c, http.StatusOK, expense)
}

// Delete soft deletes an expense owned by the caller
func (h *ExpenseHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := getUintPathParam(c, "id")
	if err != nil {
		return SendError(c, errors.ExpenseInvalidID)
	}

	if err := h.expenseService.Delete(id, userID); err != nil {
		if err == services.ErrExpenseNotFound {
			return SendError(c, errors.ExpenseNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Expense deleted",
	})
}

// DateRange returns the span of the caller's recorded expenses
func (h *ExpenseHandler) DateRange(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	dateRange, err := h.expenseService.DateRange(userID)
	if err != nil {
		if err == services.ErrNoExpenses {
			return SendError(c, errors.ExpenseNoData)
		}
		return SendSystemError(c, err)
	}

	return SendSuccess(c, http.StatusOK, dateRange)
}

// Analytics aggregates the caller's spending within a date range
func (h *ExpenseHandler) Analytics(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	startDate := c.QueryParam("start_date")
	endDate := c.QueryParam("end_date")

	result, err := h.expenseService.Analytics(userID, startDate, endDate)
	if err != nil {
		switch err {
		case services.ErrDatesRequired, services.ErrInvalidStartDate,
			services.ErrInvalidEndDate, services.ErrEndBeforeStart,
			services.ErrFutureEndDate:
			return SendError(c, errors.ValidationInvalidDate, errors.WithMessage(err.Error()))
		default:
			return SendSystemError(c, err)
		}
	}

	return SendSuccess(c, http.StatusOK, result)
}
