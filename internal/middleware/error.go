package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/logger"
)

// ErrorHandler returns a Gin middleware that converts errors set on the Gin
// context into JSON error bodies. AppErrors are rendered with their code and
// message; unexpected errors are logged and rendered as a generic internal
// error. Panics are recovered the same way.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Get().Errorw("panic recovered",
					"panic", r,
					"path", c.Request.URL.Path,
					"request_id", RequestID(c),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, apperrors.ErrInternalServer)
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			if appErr.Internal != nil {
				logger.Get().Errorw("app error",
					"code", appErr.Code,
					"internal", appErr.Internal.Error(),
					"path", c.Request.URL.Path,
					"request_id", RequestID(c),
				)
			}
			c.JSON(appErr.StatusCode, appErr)
			return
		}

		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"request_id", RequestID(c),
		)
		c.JSON(apperrors.ErrInternalServer.StatusCode, apperrors.ErrInternalServer)
	}
}

// NotFound renders unknown routes in the API error shape.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, apperrors.WithMessage(apperrors.ErrNotFound, "Endpoint not found"))
	}
}
