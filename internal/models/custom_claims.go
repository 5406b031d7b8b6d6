package models

import "github.com/golang-jwt/jwt/v5"

// CustomClaims represents the custom claims in our JWT tokens
type CustomClaims struct {
	jwt.RegisteredClaims
	UserID    uint   `json:"user_id"`
	Email     string `json:"email,omitempty"`
	IsAdmin   bool   `json:"is_admin"`
	TokenType string `json:"token_type"`
}
