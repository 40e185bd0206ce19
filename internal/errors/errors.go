package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailTaken is returned when a verified user already holds the email.
	ErrEmailTaken = errors.New("email already exists")
	// ErrUserNotFound is returned when no user matches the given email or id.
	ErrUserNotFound = errors.New("user not found")
	// ErrAlreadyVerified is returned when verification is attempted on a verified user.
	ErrAlreadyVerified = errors.New("email already verified")
	// ErrInvalidOTP is returned when no OTP record matches the presented code.
	ErrInvalidOTP = errors.New("invalid OTP")
	// ErrOTPExpired is returned when a matching OTP is older than the validity window.
	// A fresh OTP has already been dispatched by the time callers see this.
	ErrOTPExpired = errors.New("OTP expired, new OTP sent")
	// ErrInvalidCredentials is returned when login fails for any reason,
	// including an unverified account.
	ErrInvalidCredentials = errors.New("invalid credentials or not verified")
	// ErrRefreshTokenRequired is returned when no refresh token was presented.
	ErrRefreshTokenRequired = errors.New("refresh token required")
	// ErrInvalidRefreshToken is returned when a refresh token fails verification
	// or does not match the single active token stored for the user.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrPasswordMismatch is returned when password and confirmation disagree.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrInvalidResetToken is returned when a reset token fails verification
	// or its subject no longer exists.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	// ErrIncorrectPassword is returned when the current password does not match.
	ErrIncorrectPassword = errors.New("current password is incorrect")
	// ErrCategoryExists is returned when the user already owns a category with that name.
	ErrCategoryExists = errors.New("category already exists")
	// ErrCategoryNotFound is returned when no category matches the id.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryProtected is returned when deleting a default or foreign category.
	ErrCategoryProtected = errors.New("cannot delete this category")
	// ErrBudgetNotFound is returned when no budget owned by the caller matches the id.
	ErrBudgetNotFound = errors.New("budget not found")
	// ErrExpenseNotFound is returned when no expense owned by the caller matches the id.
	ErrExpenseNotFound = errors.New("expense not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unexpected errors are
// reported generically so internal details never reach the caller.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrAlreadyVerified):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ALREADY_VERIFIED")
	case errors.Is(err, ErrInvalidOTP):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_OTP")
	case errors.Is(err, ErrOTPExpired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "OTP_EXPIRED")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrRefreshTokenRequired):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "REFRESH_TOKEN_REQUIRED")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusForbidden, err.Error(), "INVALID_REFRESH_TOKEN")
	case errors.Is(err, ErrPasswordMismatch):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PASSWORD_MISMATCH")
	case errors.Is(err, ErrInvalidResetToken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_RESET_TOKEN")
	case errors.Is(err, ErrIncorrectPassword):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INCORRECT_PASSWORD")
	case errors.Is(err, ErrCategoryExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "CATEGORY_EXISTS")
	case errors.Is(err, ErrCategoryNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CATEGORY_NOT_FOUND")
	case errors.Is(err, ErrCategoryProtected):
		return NewHTTPError(http.StatusForbidden, err.Error(), "CATEGORY_PROTECTED")
	case errors.Is(err, ErrBudgetNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "BUDGET_NOT_FOUND")
	case errors.Is(err, ErrExpenseNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "EXPENSE_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
