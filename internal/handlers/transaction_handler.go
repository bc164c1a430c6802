package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stockfolio/internal/models"
	"stockfolio/internal/pagination"
	"stockfolio/internal/services"
)

// TransactionHandler handles trade history requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// ListTransactionsQuery holds the query parameters of the trade history.
type ListTransactionsQuery struct {
	pagination.PageRequest
	Search string `form:"search" binding:"max=100"`
	Type   string `form:"type" binding:"omitempty,trade_type"`
}

// ListTransactions handles listing trades.
// @Summary     List transactions
// @Description List executed trades, newest first
// @Tags        transactions
// @Produce     json
// @Param       search    query string false "Symbol, stock name or portfolio name"
// @Param       type      query string false "BUY or SELL"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 50, max 500)"
// @Success     200 {array}  TransactionResponse "Transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var q ListTransactionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	filter := services.TransactionFilter{Search: q.Search, Page: q.PageRequest}
	if q.Type != "" {
		side := models.TradeType(strings.ToUpper(q.Type))
		filter.Type = &side
	}

	txns, err := h.transactionService.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTransactionResponses(txns))
}
