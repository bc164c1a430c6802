// Package errors provides the application error type shared by services and
// handlers. Services return *AppError values so handlers can render a stable
// status code and message without leaking internal details.
package errors

import "net/http"

// AppError is a structured application error with a machine-readable code,
// a client-facing message, the HTTP status it maps to, and an optional
// internal cause that is logged but never rendered.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"error"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an *AppError with the same code, so callers
// can compare against sentinels after Wrap or WithMessage.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Wrap copies a sentinel and attaches an internal cause.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage copies a sentinel with a custom client-facing message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput        = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound            = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer      = &AppError{Code: "INTERNAL_ERROR", Message: "Internal server error", StatusCode: http.StatusInternalServerError}
	ErrConcurrencyConflict = &AppError{Code: "CONCURRENCY_CONFLICT", Message: "The request conflicted with another update, please retry", StatusCode: http.StatusConflict}
)

// Stock errors.
var (
	ErrStockNotFound    = &AppError{Code: "STOCK_NOT_FOUND", Message: "Stock not found", StatusCode: http.StatusNotFound}
	ErrQuoteUnavailable = &AppError{Code: "QUOTE_UNAVAILABLE", Message: "No price available for this stock", StatusCode: http.StatusServiceUnavailable}
)

// Portfolio errors.
var (
	ErrPortfolioNotFound  = &AppError{Code: "PORTFOLIO_NOT_FOUND", Message: "Portfolio not found", StatusCode: http.StatusNotFound}
	ErrDuplicatePortfolio = &AppError{Code: "DUPLICATE_PORTFOLIO", Message: "Portfolio with this name already exists", StatusCode: http.StatusConflict}
)

// Trade errors.
var (
	ErrInsufficientFunds  = &AppError{Code: "INSUFFICIENT_FUNDS", Message: "Insufficient balance", StatusCode: http.StatusBadRequest}
	ErrInsufficientShares = &AppError{Code: "INSUFFICIENT_SHARES", Message: "Insufficient shares", StatusCode: http.StatusBadRequest}
	ErrTradeTimeout       = &AppError{Code: "TRADE_TIMEOUT", Message: "Trade timed out and was not applied", StatusCode: http.StatusGatewayTimeout}
)
