package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/errors"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/service"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// AddCategoryRequest represents a category creation request.
type AddCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// AddCategory godoc
// @Summary Create a category for the authenticated user
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddCategoryRequest true "Category data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /categories/add-category [post]
func (h *CategoryHandler) AddCategory(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req AddCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.categoryService.Create(c.Request().Context(), userID, req.Name)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "category created successfully",
		"category": category,
	})
}

// GetDefaultCategories godoc
// @Summary List the shared default categories
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} errors.ErrorResponse
// @Router /categories/get-default-categories [get]
func (h *CategoryHandler) GetDefaultCategories(c echo.Context) error {
	categories, err := h.categoryService.ListDefaults(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"categories": categories,
	})
}

// GetCategories godoc
// @Summary List the authenticated user's categories
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} errors.ErrorResponse
// @Router /categories/get-categories [get]
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	categories, err := h.categoryService.ListMine(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"categories": categories,
	})
}

// DeleteCategory godoc
// @Summary Delete a category owned by the authenticated user
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /categories/delete-category/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid category ID",
			Code:  "INVALID_UUID",
		})
	}

	if err := h.categoryService.Delete(c.Request().Context(), userID, categoryID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "category deleted",
	})
}
