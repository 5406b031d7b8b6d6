package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"minflow/internal/config"
	"minflow/internal/database"
	"minflow/internal/handlers"
	custommiddleware "minflow/internal/middleware"
	"minflow/internal/repositories"
	"minflow/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	expenseRepo := repositories.NewExpenseRepository(db)

	// Services
	metrics := services.NewPrometheusMetrics()
	passwordService := services.NewPasswordServiceWithCost(cfg.Security.BCryptCost)
	tokenService := services.NewTokenService(&cfg.JWT)
	authService := services.NewAuthService(userRepo, passwordService, tokenService, metrics, logger)
	categoryService := services.NewCategoryService(categoryRepo, metrics, logger)
	expenseService := services.NewExpenseService(expenseRepo, categoryRepo, metrics, logger)
	userService := services.NewUserService(userRepo, logger)
	extractionService := services.NewExtractionService(cfg.Extractor, metrics, logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	userHandler := handlers.NewUserHandler(userService)
	extractHandler := handlers.NewExtractHandler(extractionService)
	healthHandler := handlers.NewHealthCheckHandler(db)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = custommiddleware.CustomHTTPErrorHandler

	e.Use(custommiddleware.RequestID())
	e.Use(custommiddleware.PanicRecovery())
	e.Use(custommiddleware.SecurityHeaders())
	e.Use(custommiddleware.RateLimiter())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)

	authenticated := api.Group("", custommiddleware.RequireAuth(tokenService))

	categories := authenticated.Group("/categories")
	categories.GET("", categoryHandler.List)
	categories.POST("", categoryHandler.Create)
	categories.GET("/:id", categoryHandler.Get)
	categories.DELETE("/:id", categoryHandler.Delete)

	expenses := authenticated.Group("/expenses")
	expenses.GET("", expenseHandler.List)
	expenses.POST("", expenseHandler.Create)
	expenses.GET("/date-range", expenseHandler.DateRange)
	expenses.GET("/analytics", expenseHandler.Analytics)
	expenses.POST("/extract", extractHandler.Extract)
	expenses.GET("/:id", expenseHandler.Get)
	expenses.DELETE("/:id", expenseHandler.Delete)

	users := authenticated.Group("/users", custommiddleware.RequireAdmin())
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.DELETE("/:id", userHandler.Delete)

	if cfg.IsDevelopment() {
		devHandler := handlers.NewDevHandler(expenseRepo, categoryRepo)
		dev := authenticated.Group("/dev")
		dev.POST("/generate-test-data", devHandler.GenerateTestData)
		logger.Info("development endpoints enabled")
	}

	// Start server with graceful shutdown
	go func() {
		address := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("starting server", "address", address, "environment", cfg.Server.Environment)
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
