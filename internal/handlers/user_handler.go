package handlers

import (
	"net/http"

	"minflow/internal/errors"
	"minflow/internal/services"

	"github.com/labstack/echo/v4"
)

// UserHandler handles admin-only user management endpoints
type UserHandler struct {
	userService services.UserServiceInterface
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService services.UserServiceInterface) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// List returns users paginated. Admin only.
func (h *UserHandler) List(c echo.Context) error {
	if !getIsAdminFromContext(c) {
		return SendError(c, errors.AuthInsufficientPermission)
	}

	offset, limit := getPagination(c)

	users, total, err := h.userService.ListUsers(offset, limit)
	if err != nil {
		return SendSystemError(c, err)
	}

	return SendList(c, users, total, limit, offset)
}

// Get returns a single user. Admin only.
func (h *UserHandler) Get(c echo.Context) error {
	if !getIsAdminFromContext(c) {
		return SendError(c, errors.AuthInsufficientPermission)
	}

	id, err := getUintPathParam(c, "id")
	if err != nil {
		return SendError(c, errors.UserInvalidID)
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		if err == services.ErrUserNotFound {
			return SendError(c, errors.UserNotFound)
		}
		return SendSystemError(c, err)
	}

	return SendSuccess(c, http.StatusOK, user)
}

// Delete soft deletes a user. Admin only; admin accounts are protected.
func (h *UserHandler) Delete(c echo.Context) error {
	if !getIsAdminFromContext(c) {
		return SendError(c, errors.AuthInsufficientPermission)
	}

	id, err := getUintPathParam(c, "id")
	if err != nil {
		return SendError(c, errors.UserInvalidID)
	}

	if err := h.userService.DeleteUser(id); err != nil {
		if err == services.ErrUserNotFound {
			return SendError(c, errors.UserNotFound)
		}
		if err == services.ErrCannotDeleteAdmin {
			return SendError(c, errors.UserDeleteAdmin)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "User deleted",
	})
}
