package services

import (
	"context"
	"time"

	"minflow/internal/dto"
	"minflow/internal/models"

	"github.com/shopspring/decimal"
)

type AuthServiceInterface interface {
	Signup(req *dto.SignupRequest) (*dto.AuthData, error)
	Login(req *dto.LoginRequest) (*dto.AuthData, error)
}

type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
	GetTokenExpiry(tokenString string) (time.Time, error)
}

type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

// CategoryServiceInterface defines category operations. Users see the shared
// defaults plus their own categories.
type CategoryServiceInterface interface {
	ListForUser(userID uint) ([]models.Category, int64, error)
	GetForUser(id, userID uint) (*models.Category, error)
	CreateForUser(userID uint, req *dto.CreateCategoryRequest) (*models.Category, error)
	DeleteForUser(id, userID uint) error
}

// ExpenseServiceInterface defines expense recording and analytics operations
type ExpenseServiceInterface interface {
	Create(userID uint, req *dto.CreateExpenseRequest) (*models.Expense, error)
	List(userID uint, offset, limit int) (*dto.ExpenseListResponse, error)
	Get(id, userID uint) (*models.Expense, error)
	Delete(id, userID uint) error
	DateRange(userID uint) (*dto.DateRange, error)
	Analytics(userID uint, startDate, endDate string) (*dto.AnalyticsResult, error)
}

// UserServiceInterface defines admin-only user management operations
type UserServiceInterface interface {
	ListUsers(offset, limit int) ([]*models.User, int64, error)
	GetUser(id uint) (*models.User, error)
	DeleteUser(id uint) error
}

// ExtractionServiceInterface proxies free-text expense extraction to the
// external AI service
type ExtractionServiceInterface interface {
	Extract(ctx context.Context, req *dto.ExtractRequest) (*dto.ExtractResponse, int, error)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

// ExpenseGeneratorInterface generates realistic expense fixtures for dev data
type ExpenseGeneratorInterface interface {
	GenerateHistoricalExpenses(userID uint, categories []models.Category, startDate, endDate time.Time, count int) []*models.Expense
	GenerateExpenseName(categoryName string) string
	GenerateAmount(categoryName string) decimal.Decimal
	GenerateTimestamp(startDate, endDate time.Time) time.Time
}
