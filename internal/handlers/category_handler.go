package handlers

import (
	"net/http"

	"minflow/internal/dto"
	"minflow/internal/errors"
	"minflow/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	categoryService services.CategoryServiceInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService services.CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// List returns the shared default categories plus the caller's own
func (h *CategoryHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	categories, total, err := h.categoryService.ListForUser(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return SendList(c, categories, total, 0, 0)
}

// Get returns a single category visible to the caller
func (h *CategoryHandler) Get(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := getUintPathParam(c, "id")
	if err != nil {
		return SendError(c, errors.CategoryInvalidID)
	}

	category, err := h.categoryService.GetForUser(id, userID)
	if err != nil {
		if err == services.ErrCategoryNotFound {
			return SendError(c, errors.CategoryNotFound)
		}
		return SendSystemError(c, err)
	}

	return SendSuccess(c, http.StatusOK, category)
}

// Create adds a user-scoped category
func (h *CategoryHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithMessage("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	category, err := h.categoryService.CreateForUser(userID, &req)
	if err != nil {
		return SendSystemError(c, err)
	}

	return SendSuccess(c, http.StatusCreated, category)
}

// Delete removes a user-scoped category. Defaults cannot be deleted.
func (h *CategoryHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := getUintPathParam(c, "id")
	if err != nil {
		return SendError(c, errors.CategoryInvalidID)
	}

	if err := h.categoryService.DeleteForUser(id, userID); err != nil {
		if err == services.ErrCategoryNotFound {
			return SendError(c, errors.CategoryNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Category deleted",
	})
}
