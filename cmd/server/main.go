package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Anuj1063/SDLC-Expence-Tracker/docs"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/auth"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/cache"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/config"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/db"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/handler"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/mail"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/model"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/repository"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/router"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/service"
)

// @title Expense Tracker API
// @version 1.0
// @description Personal finance tracking API with OTP email verification, JWT authentication, categories, budgets, and expenses.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.OtpRecord{},
		&model.Category{},
		&model.Budget{},
		&model.Expense{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	otpRepo := repository.NewOtpRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	budgetRepo := repository.NewBudgetRepository(gormDB)
	expenseRepo := repository.NewExpenseRepository(gormDB)

	// Initialize collaborators
	tokenService := auth.NewTokenService(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTResetSecret)
	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)

	// Initialize services
	authService := service.NewAuthService(userRepo, otpRepo, tokenService, mailer, cfg.AppBaseURL)
	categoryService := service.NewCategoryService(categoryRepo, cacheClient)
	budgetService := service.NewBudgetService(budgetRepo, cacheClient)
	expenseService := service.NewExpenseService(expenseRepo, budgetRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	expenseHandler := handler.NewExpenseHandler(expenseService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		categoryHandler,
		budgetHandler,
		expenseHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
