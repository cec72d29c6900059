// Package errors defines the error taxonomy shared by the budget client and the
// development backend. Every failure that reaches a caller is an *AppError carrying a
// stable code, a human-readable message, and optional per-field validation messages.
package errors

import (
	"errors"
	"net/http"
)

// AppError represents a structured application error.
type AppError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	StatusCode int               `json:"-"`
	Fields     map[string]string `json:"fields,omitempty"`
	Internal   error             `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is matches AppErrors by code so sentinel comparisons survive Wrap/WithMessage.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Wrap creates a new AppError with the sentinel's code/message/status wrapping an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Fields:     sentinel.Fields,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Fields:     sentinel.Fields,
		Internal:   sentinel.Internal,
	}
}

// WithFields creates a new AppError carrying per-field validation messages.
func WithFields(sentinel *AppError, fields map[string]string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Fields:     fields,
		Internal:   sentinel.Internal,
	}
}

// As extracts an *AppError from err.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Authentication errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Your session has expired, please log in again", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid login or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrNotLoggedIn        = &AppError{Code: "NOT_LOGGED_IN", Message: "You are not logged in"}
)

// Transport errors.
var (
	ErrValidation = &AppError{Code: "VALIDATION_FAILED", Message: "Some fields are invalid", StatusCode: http.StatusBadRequest}
	ErrNotFound   = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrConflict   = &AppError{Code: "CONFLICT", Message: "The resource was changed or already exists", StatusCode: http.StatusConflict}
	ErrServer     = &AppError{Code: "SERVER_ERROR", Message: "Server error, try again later", StatusCode: http.StatusInternalServerError}
	ErrNetwork    = &AppError{Code: "NETWORK_ERROR", Message: "Cannot reach server"}
)

// Local (pre-request) errors.
var (
	ErrNoAccountSelected    = &AppError{Code: "NO_ACCOUNT_SELECTED", Message: "No account is selected"}
	ErrAccountNotFound      = &AppError{Code: "ACCOUNT_NOT_FOUND", Message: "Account not found", StatusCode: http.StatusNotFound}
	ErrCategoryNotFound     = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrTransactionNotFound  = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrCategoryTypeMismatch = &AppError{Code: "CATEGORY_TYPE_MISMATCH", Message: "Category type does not match transaction type", StatusCode: http.StatusBadRequest}
)

// Development backend errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
	ErrDuplicateLogin = &AppError{Code: "DUPLICATE_LOGIN", Message: "A user with this login already exists", StatusCode: http.StatusConflict}
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrCategoryInUse  = &AppError{Code: "CATEGORY_IN_USE", Message: "Category is used by existing transactions", StatusCode: http.StatusConflict}
)
