package handlers

import (
	"net/http"

	"minflow/internal/dto"
	"minflow/internal/errors"
	"minflow/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService services.AuthServiceInterface
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup handles user registration. On success the response carries a ready
// to use access token alongside the created user.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req dto.SignupRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithMessage("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	data, err := h.authService.Signup(&req)
	if err != nil {
		if err == services.ErrUserAlreadyExists {
			return SendError(c, errors.UserAlreadyExists)
		}
		return SendSystemError(c, err)
	}

	return SendSuccess(c, http.StatusCreated, data)
}

// Login handles user authentication
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithMessage("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	data, err := h.authService.Login(&req)
	if err != nil {
		if err == services.ErrInvalidCredentials {
			return SendError(c, errors.AuthInvalidCredentials)
		}
		return SendSystemError(c, err)
	}

	return SendSuccess(c, http.StatusOK, data)
}
