package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockfolio/internal/services"
)

// NetWorthHandler handles net-worth history requests.
type NetWorthHandler struct {
	netWorthService services.NetWorthServicer
}

// NewNetWorthHandler creates a new NetWorthHandler.
func NewNetWorthHandler(netWorthService services.NetWorthServicer) *NetWorthHandler {
	return &NetWorthHandler{netWorthService: netWorthService}
}

// HistoryQuery holds the query parameters of the history endpoint.
type HistoryQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

// GetHistory handles retrieving net-worth history.
// @Summary     Net-worth history
// @Description Most recent snapshots, oldest first
// @Tags        net-worth
// @Produce     json
// @Param       limit query int false "Number of snapshots (default 50, max 1000)"
// @Success     200 {array}  SnapshotResponse "Snapshots"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /net-worth/history [get]
func (h *NetWorthHandler) GetHistory(c *gin.Context) {
	var q HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	snapshots, err := h.netWorthService.GetHistory(c.Request.Context(), q.Limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	out := make([]SnapshotResponse, len(snapshots))
	for i, s := range snapshots {
		out[i] = newSnapshotResponse(s)
	}
	c.JSON(http.StatusOK, out)
}
