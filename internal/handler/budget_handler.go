package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/errors"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/model"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/repository"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/service"
)

// BudgetHandler handles budget endpoints.
type BudgetHandler struct {
	budgetService service.BudgetService
}

// NewBudgetHandler creates a new budget handler.
func NewBudgetHandler(budgetService service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// SetBudgetRequest represents a budget upsert request.
type SetBudgetRequest struct {
	CategoryID string `json:"category_id" validate:"required,uuid"`
	Amount     string `json:"amount" validate:"required"`
	Frequency  string `json:"frequency" validate:"omitempty,oneof=monthly weekly yearly"`
}

// UpdateBudgetRequest represents a budget update request.
type UpdateBudgetRequest struct {
	Amount    *string `json:"amount" validate:"omitempty"`
	Frequency *string `json:"frequency" validate:"omitempty,oneof=monthly weekly yearly"`
}

// SetBudget godoc
// @Summary Set the budget for a category (upsert)
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SetBudgetRequest true "Budget data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /budgets/set-budget [post]
func (h *BudgetHandler) SetBudget(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req SetBudgetRequest
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

	budget, err := h.budgetService.Set(c.Request().Context(), userID, categoryID, amount, model.BudgetFrequency(req.Frequency))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "budget saved",
		"budget":  budget,
	})
}

// GetBudgets godoc
// @Summary List the authenticated user's budgets
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} errors.ErrorResponse
// @Router /budgets/get-budgets [get]
func (h *BudgetHandler) GetBudgets(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	budgets, err := h.budgetService.List(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"budgets": budgets,
	})
}

// UpdateBudget godoc
// @Summary Update a budget owned by the authenticated user
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Budget ID"
// @Param request body UpdateBudgetRequest true "Fields to update"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /budgets/update-budget/{id} [put]
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	budgetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid budget ID",
			Code:  "INVALID_UUID",
		})
	}

	var req UpdateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	update := repository.BudgetUpdate{}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid amount")
		}
		update.Amount = &amount
	}
	if req.Frequency != nil {
		frequency := model.BudgetFrequency(*req.Frequency)
		update.Frequency = &frequency
	}

	if err := h.budgetService.Update(c.Request().Context(), userID, budgetID, update); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "budget updated",
	})
}

// DeleteBudget godoc
// @Summary Delete a budget owned by the authenticated user
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Budget ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /budgets/delete-budget/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	budgetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid budget ID",
			Code:  "INVALID_UUID",
		})
	}

	if err := h.budgetService.Delete(c.Request().Context(), userID, budgetID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "budget deleted",
	})
}
