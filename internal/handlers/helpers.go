package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/logger"
	"stockfolio/internal/valuation"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error" example:"Insufficient balance"`
	Code  string `json:"code" example:"INSUFFICIENT_FUNDS"`
}

// MessageResponse is the body of endpoints that only confirm an action.
type MessageResponse struct {
	Message string `json:"message"`
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, ErrorResponse{Error: appErr.Message, Code: appErr.Code})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, ErrorResponse{
		Error: apperrors.ErrInternalServer.Message,
		Code:  apperrors.ErrInternalServer.Code,
	})
}

// bindError converts a binding failure into an INVALID_INPUT error.
func bindError(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// SymbolURI binds the ticker path parameter.
type SymbolURI struct {
	Symbol string `uri:"symbol" binding:"required,ticker"`
}

// bindSymbol reads the :symbol path parameter, writing a 400 and returning
// false when it is not a well-formed ticker.
func bindSymbol(c *gin.Context) (string, bool) {
	var uri SymbolURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondWithError(c, bindError(err))
		return "", false
	}
	return uri.Symbol, true
}

// money renders an amount for JSON, rounded to cents.
func money(d decimal.Decimal) float64 {
	return valuation.Round2(d)
}
