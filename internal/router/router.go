package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/config"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	categoryHandler *handler.CategoryHandler,
	budgetHandler *handler.BudgetHandler,
	expenseHandler *handler.ExpenseHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/verify-otp", authHandler.VerifyOTP)
	api.POST("/auth/resend-otp", authHandler.ResendOTP)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/forget-password", authHandler.ForgetPassword)
	api.POST("/auth/reset-password/:token", authHandler.ResetPassword)

	// Secured routes (require a bearer access token)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTAccessSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	secured.POST("/auth/update-password", authHandler.UpdatePassword)
	secured.POST("/auth/logout", authHandler.Logout)

	// Category routes
	secured.POST("/categories/add-category", categoryHandler.AddCategory)
	secured.GET("/categories/get-default-categories", categoryHandler.GetDefaultCategories)
	secured.GET("/categories/get-categories", categoryHandler.GetCategories)
	secured.DELETE("/categories/delete-category/:id", categoryHandler.DeleteCategory)

	// Budget routes
	secured.POST("/budgets/set-budget", budgetHandler.SetBudget)
	secured.GET("/budgets/get-budgets", budgetHandler.GetBudgets)
	secured.PUT("/budgets/update-budget/:id", budgetHandler.UpdateBudget)
	secured.DELETE("/budgets/delete-budget/:id", budgetHandler.DeleteBudget)

	// Expense routes
	secured.POST("/expenses/add-expense", expenseHandler.AddExpense)
	secured.GET("/expenses/get-expenses", expenseHandler.GetExpenses)
	secured.POST("/expenses/update-expense/:id", expenseHandler.UpdateExpense)
	secured.DELETE("/expenses/delete-expense/:id", expenseHandler.DeleteExpense)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
