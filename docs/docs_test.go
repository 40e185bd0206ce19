package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestGeneratedDocCoversAllRoutes(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		BasePath    string                     `json:"basePath"`
		Paths       map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "/api", doc.BasePath)

	routes := []string{
		"/auth/register",
		"/auth/verify-otp",
		"/auth/resend-otp",
		"/auth/login",
		"/auth/refresh",
		"/auth/forget-password",
		"/auth/reset-password/{token}",
		"/auth/update-password",
		"/auth/logout",
		"/categories/add-category",
		"/categories/get-default-categories",
		"/categories/get-categories",
		"/categories/delete-category/{id}",
		"/budgets/set-budget",
		"/budgets/get-budgets",
		"/budgets/update-budget/{id}",
		"/budgets/delete-budget/{id}",
		"/expenses/add-expense",
		"/expenses/get-expenses",
		"/expenses/update-expense/{id}",
		"/expenses/delete-expense/{id}",
	}
	for _, route := range routes {
		assert.Contains(t, doc.Paths, route)
	}
	assert.Len(t, doc.Paths, len(routes))

	for _, def := range []string{
		"errors.ErrorResponse",
		"handler.RegisterRequest",
		"handler.LoginRequest",
		"handler.AuthResponse",
		"handler.SetBudgetRequest",
		"handler.AddExpenseRequest",
		"handler.AddExpenseResponse",
	} {
		assert.Contains(t, doc.Definitions, def)
	}
}
