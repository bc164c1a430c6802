package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"stockfolio/internal/models"
	"stockfolio/internal/services"
)

// TradeHandler handles buy and sell requests.
type TradeHandler struct {
	tradeService services.TradeServicer
	auditService services.AuditServicer
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(tradeService services.TradeServicer, auditService services.AuditServicer) *TradeHandler {
	return &TradeHandler{tradeService: tradeService, auditService: auditService}
}

// TradeRequest represents the request payload for a buy or sell. Price is
// the price the client last saw; the trade executes at the server's price.
type TradeRequest struct {
	Quantity    int64            `json:"quantity" binding:"required,gt=0" example:"10"`
	PortfolioID string           `json:"portfolio_id" binding:"required"`
	Price       *decimal.Decimal `json:"price,omitempty" swaggertype:"number" example:"175.43"`
}

// TradeResponse is returned after a trade commits.
type TradeResponse struct {
	Message       string              `json:"message"`
	Transaction   TransactionResponse `json:"transaction"`
	NewBalance    float64             `json:"new_balance"`
	TotalNetWorth float64             `json:"total_net_worth"`
}

// Buy handles buying shares.
// @Summary     Buy stock
// @Description Buy shares into a portfolio at the current server price
// @Tags        trades
// @Accept      json
// @Produce     json
// @Param       symbol  path string       true "Ticker symbol"
// @Param       request body TradeRequest true "Trade details"
// @Success     200 {object} TradeResponse "Trade executed"
// @Failure     400 {object} ErrorResponse "Invalid input or insufficient funds"
// @Failure     404 {object} ErrorResponse "Stock or portfolio not found"
// @Failure     409 {object} ErrorResponse "Concurrent update"
// @Failure     504 {object} ErrorResponse "Trade timed out"
// @Router      /stocks/{symbol}/buy [post]
func (h *TradeHandler) Buy(c *gin.Context) {
	h.trade(c, models.TradeBuy)
}

// Sell handles selling shares.
// @Summary     Sell stock
// @Description Sell shares from a portfolio at the current server price
// @Tags        trades
// @Accept      json
// @Produce     json
// @Param       symbol  path string       true "Ticker symbol"
// @Param       request body TradeRequest true "Trade details"
// @Success     200 {object} TradeResponse "Trade executed"
// @Failure     400 {object} ErrorResponse "Invalid input or insufficient shares"
// @Failure     404 {object} ErrorResponse "Stock or portfolio not found"
// @Failure     409 {object} ErrorResponse "Concurrent update"
// @Failure     504 {object} ErrorResponse "Trade timed out"
// @Router      /stocks/{symbol}/sell [post]
func (h *TradeHandler) Sell(c *gin.Context) {
	h.trade(c, models.TradeSell)
}

func (h *TradeHandler) trade(c *gin.Context, side models.TradeType) {
	symbol, ok := bindSymbol(c)
	if !ok {
		return
	}
	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	in := services.TradeRequest{
		Symbol:      symbol,
		PortfolioID: req.PortfolioID,
		Quantity:    req.Quantity,
		ClientPrice: req.Price,
	}
	var (
		result *services.TradeResult
		err    error
	)
	if side == models.TradeBuy {
		result, err = h.tradeService.Buy(c.Request.Context(), in)
	} else {
		result, err = h.tradeService.Sell(c.Request.Context(), in)
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	txn := result.Transaction
	action, verb := services.AuditBuy, "bought"
	if side == models.TradeSell {
		action, verb = services.AuditSell, "sold"
	}
	h.auditService.Log(action, "transaction", txn.ID, c.ClientIP(), map[string]any{
		"symbol":       txn.Stock.Symbol,
		"portfolio_id": txn.PortfolioID,
		"quantity":     txn.Quantity,
		"price":        txn.Price.StringFixed(2),
	})

	resp := TradeResponse{
		Message: fmt.Sprintf("Successfully %s %d shares of %s at $%s for $%s",
			verb, txn.Quantity, txn.Stock.Symbol, txn.Price.StringFixed(2), txn.Total().StringFixed(2)),
		Transaction: newTransactionResponse(*txn),
		NewBalance:  money(result.NewBalance),
	}
	if result.Snapshot != nil {
		resp.TotalNetWorth = money(result.Snapshot.TotalNetWorth)
	}
	c.JSON(http.StatusOK, resp)
}
