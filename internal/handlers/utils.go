package handlers

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

// ErrUnauthorized is returned when user context is invalid
var ErrUnauthorized = fmt.Errorf("unauthorized")

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// Helper function to extract user ID from context
// Returns ErrUnauthorized if user ID is missing or invalid
func getUserIDFromContext(c echo.Context) (uint, error) {
	userIDValue := c.Get("user_id")
	if userIDValue == nil {
		return 0, ErrUnauthorized
	}

	userID, ok := userIDValue.(uint)
	if !ok {
		return 0, ErrUnauthorized
	}

	return userID, nil
}

// getIsAdminFromContext extracts the is_admin boolean from context
// Returns false if the value is not set or not a boolean
func getIsAdminFromContext(c echo.Context) bool {
	isAdminValue := c.Get("is_admin")
	if isAdminValue == nil {
		return false
	}

	isAdmin, ok := isAdminValue.(bool)
	if !ok {
		return false
	}

	return isAdmin
}

// getUintPathParam parses a numeric path parameter like :id
func getUintPathParam(c echo.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || value == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(value), nil
}

func getIntParam(c echo.Context, name string, defaultValue int) int {
	param := c.QueryParam(name)
	if param == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(param)
	if err != nil {
		return defaultValue
	}

	return value
}

// getPagination reads offset/limit query params with sane bounds
func getPagination(c echo.Context) (offset, limit int) {
	offset = getIntParam(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	limit = getIntParam(c, "limit", defaultPageLimit)
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	return offset, limit
}
