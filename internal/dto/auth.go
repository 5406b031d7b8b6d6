package dto

import "minflow/internal/models"

// Auth Request DTOs

// SignupRequest contains user registration data
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
}

// LoginRequest contains login credentials
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Auth Response DTOs

// AuthData is the payload returned on successful signup or login. Both token
// and user are always present together.
type AuthData struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}
