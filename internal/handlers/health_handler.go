package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the ledger store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler handles liveness checks.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthResponse is the liveness body.
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Message string `json:"message"`
}

// Health handles the liveness check.
// @Summary     Health check
// @Tags        health
// @Produce     json
// @Success     200 {object} HealthResponse "Healthy"
// @Failure     503 {object} HealthResponse "Database unreachable"
// @Router      /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Message: "Database unreachable"})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Message: "Stockfolio API is running"})
}
