package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/errors"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/repository"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/service"
)

// dateLayout is the wire format for expense dates and range filters.
const dateLayout = "2006-01-02"

// ExpenseHandler handles expense endpoints.
type ExpenseHandler struct {
	expenseService service.ExpenseService
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(expenseService service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// AddExpenseRequest represents an expense creation request.
type AddExpenseRequest struct {
	CategoryID string `json:"category_id" validate:"required,uuid"`
	Amount     string `json:"amount" validate:"required"`
	Date       string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Note       string `json:"note" validate:"omitempty,max=500"`
}

// UpdateExpenseRequest represents an expense update request.
type UpdateExpenseRequest struct {
	CategoryID *string `json:"category_id" validate:"omitempty,uuid"`
	Amount     *string `json:"amount" validate:"omitempty"`
	Date       *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Note       *string `json:"note" validate:"omitempty,max=500"`
}

// AddExpenseResponse carries the stored expense plus the advisory budget
// evaluation. The expense is persisted even when the budget is exceeded.
type AddExpenseResponse struct {
	Message        string      `json:"message"`
	Expense        interface{} `json:"expense"`
	BudgetExceeded bool        `json:"budget_exceeded"`
	CurrentTotal   string      `json:"current_total"`
	BudgetLimit    string      `json:"budget_limit"`
}

// AddExpense godoc
// @Summary Record an expense and evaluate it against the category budget
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddExpenseRequest true "Expense data"
// @Success 201 {object} AddExpenseResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /expenses/add-expense [post]
func (h *ExpenseHandler) AddExpense(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req AddExpenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid category ID")
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid amount")
	}

	var date time.Time
	if req.Date != "" {
		date, err = time.Parse(dateLayout, req.Date)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date")
		}
	}

	expense, evaluation, err := h.expenseService.Add(c.Request().Context(), userID, service.AddExpenseInput{
		CategoryID: categoryID,
		Amount:     amount,
		Date:       date,
		Note:       req.Note,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, AddExpenseResponse{
		Message:        "expense added",
		Expense:        expense,
		BudgetExceeded: evaluation.WillExceed,
		CurrentTotal:   evaluation.CurrentTotal.String(),
		BudgetLimit:    evaluation.Limit.String(),
	})
}

// GetExpenses godoc
// @Summary List the authenticated user's expenses
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param start query string false "Start date (YYYY-MM-DD, inclusive)"
// @Param end query string false "End date (YYYY-MM-DD, inclusive)"
// @Param category query string false "Category ID"
// @Param min query string false "Minimum amount (inclusive)"
// @Param max query string false "Maximum amount (inclusive)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /expenses/get-expenses [get]
func (h *ExpenseHandler) GetExpenses(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	filter, err := parseExpenseFilter(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	expenses, err := h.expenseService.List(c.Request().Context(), userID, filter)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"expenses": expenses,
	})
}

// UpdateExpense godoc
// @Summary Update an expense owned by the authenticated user
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Expense ID"
// @Param request body UpdateExpenseRequest true "Fields to update"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /expenses/update-expense/{id} [post]
func (h *ExpenseHandler) UpdateExpense(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid expense ID",
			Code:  "INVALID_UUID",
		})
	}

	var req UpdateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	update := repository.ExpenseUpdate{Note: req.Note}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid category ID")
		}
		update.CategoryID = &categoryID
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid amount")
		}
		update.Amount = &amount
	}
	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date")
		}
		update.Date = &date
	}

	if err := h.expenseService.Update(c.Request().Context(), userID, expenseID, update); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "expense updated",
	})
}

// DeleteExpense godoc
// @Summary Delete an expense owned by the authenticated user
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Expense ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /expenses/delete-expense/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid expense ID",
			Code:  "INVALID_UUID",
		})
	}

	if err := h.expenseService.Delete(c.Request().Context(), userID, expenseID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "expense deleted",
	})
}

// parseExpenseFilter builds the repository filter from query parameters.
// Each bound applies independently; both date and amount ranges are
// inclusive on both ends.
func parseExpenseFilter(c echo.Context) (repository.ExpenseFilter, error) {
	var filter repository.ExpenseFilter

	if v := c.QueryParam("start"); v != "" {
		start, err := time.Parse(dateLayout, v)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "invalid start date")
		}
		filter.From = &start
	}
	if v := c.QueryParam("end"); v != "" {
		end, err := time.Parse(dateLayout, v)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "invalid end date")
		}
		// push to the last instant of the day so the bound stays inclusive
		end = end.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}
	if v := c.QueryParam("category"); v != "" {
		categoryID, err := uuid.Parse(v)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "invalid category ID")
		}
		filter.CategoryID = &categoryID
	}
	if v := c.QueryParam("min"); v != "" {
		minAmount, err := decimal.NewFromString(v)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "invalid min amount")
		}
		filter.MinAmount = &minAmount
	}
	if v := c.QueryParam("max"); v != "" {
		maxAmount, err := decimal.NewFromString(v)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "invalid max amount")
		}
		filter.MaxAmount = &maxAmount
	}

	return filter, nil
}
