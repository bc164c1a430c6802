package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"stockfolio/internal/services"
)

// StockHandler handles stock, price and watchlist requests.
type StockHandler struct {
	stockService services.StockServicer
	auditService services.AuditServicer
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(stockService services.StockServicer, auditService services.AuditServicer) *StockHandler {
	return &StockHandler{stockService: stockService, auditService: auditService}
}

// StockDetailResponse is a stock with every holding of it.
type StockDetailResponse struct {
	Stock           StockResponse         `json:"stock"`
	Holdings        []HoldingResponse     `json:"holdings"`
	Transactions    []TransactionResponse `json:"transactions"`
	TotalShares     int64                 `json:"total_shares"`
	TotalValue      float64               `json:"total_value"`
	TotalProfitLoss float64               `json:"total_profit_loss"`
}

// MarketDataResponse is the daily move of a stock.
type MarketDataResponse struct {
	Symbol                string     `json:"symbol"`
	Name                  string     `json:"name"`
	CurrentPrice          float64    `json:"current_price"`
	PreviousClosePrice    float64    `json:"previous_close_price"`
	DailyChange           float64    `json:"daily_change"`
	DailyChangePercentage float64    `json:"daily_change_percentage"`
	Volume                int64      `json:"volume"`
	Status                string     `json:"status" example:"MARKET OPEN"`
	PriceVersion          int64      `json:"price_version"`
	PriceUpdatedAt        *time.Time `json:"price_updated_at"`
}

// ListStocks handles listing stocks.
// @Summary     List stocks
// @Description List tradable stocks, optionally filtered by symbol or name
// @Tags        stocks
// @Produce     json
// @Param       search query string false "Case-insensitive symbol or name filter"
// @Success     200 {array}  StockListItem "Stocks"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stocks [get]
func (h *StockHandler) ListStocks(c *gin.Context) {
	stocks, err := h.stockService.ListStocks(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newStockListItems(stocks))
}

// GetPrices handles retrieving the price of every stock.
// @Summary     Stock prices
// @Description Map of symbol to current ledger price
// @Tags        stocks
// @Produce     json
// @Success     200 {object} map[string]float64 "Prices by symbol"
// @Router      /stocks/prices [get]
func (h *StockHandler) GetPrices(c *gin.Context) {
	prices, err := h.stockService.GetPrices(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	out := make(map[string]float64, len(prices))
	for symbol, price := range prices {
		out[symbol] = money(price)
	}
	c.JSON(http.StatusOK, out)
}

// GetStock handles retrieving a stock with its holdings.
// @Summary     Get stock
// @Description Get a stock, every holding of it and its trade history
// @Tags        stocks
// @Produce     json
// @Param       symbol path string true "Ticker symbol"
// @Success     200 {object} StockDetailResponse "Stock detail"
// @Failure     400 {object} ErrorResponse "Malformed ticker"
// @Failure     404 {object} ErrorResponse "Stock not found"
// @Router      /stocks/{symbol} [get]
func (h *StockHandler) GetStock(c *gin.Context) {
	symbol, ok := bindSymbol(c)
	if !ok {
		return
	}
	detail, err := h.stockService.GetStock(c.Request.Context(), symbol)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, StockDetailResponse{
		Stock:           newStockResponse(detail.Stock),
		Holdings:        newHoldingResponses(detail.Holdings),
		Transactions:    newTransactionResponses(detail.Transactions),
		TotalShares:     detail.TotalShares,
		TotalValue:      money(detail.TotalValue),
		TotalProfitLoss: money(detail.TotalProfitLoss),
	})
}

// GetMarketData handles retrieving the daily change of a stock.
// @Summary     Stock market data
// @Description Current price against the previous close
// @Tags        stocks
// @Produce     json
// @Param       symbol path string true "Ticker symbol"
// @Success     200 {object} MarketDataResponse "Market data"
// @Failure     404 {object} ErrorResponse "Stock not found"
// @Failure     503 {object} ErrorResponse "No price yet"
// @Router      /stocks/{symbol}/market-data [get]
func (h *StockHandler) GetMarketData(c *gin.Context) {
	symbol, ok := bindSymbol(c)
	if !ok {
		return
	}
	md, err := h.stockService.GetMarketData(c.Request.Context(), symbol)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MarketDataResponse{
		Symbol:                md.Symbol,
		Name:                  md.Name,
		CurrentPrice:          money(md.Price),
		PreviousClosePrice:    money(md.PreviousClose),
		DailyChange:           money(md.Change),
		DailyChangePercentage: money(md.ChangePercent),
		Volume:                md.Volume,
		Status:                md.Status,
		PriceVersion:          md.PriceVersion,
		PriceUpdatedAt:        md.UpdatedAt,
	})
}

// ListWatchlist handles listing watched stocks.
// @Summary     Watchlist
// @Description List stocks on the watchlist with the shares held
// @Tags        watchlist
// @Produce     json
// @Success     200 {array} StockListItem "Watched stocks"
// @Router      /watchlist [get]
func (h *StockHandler) ListWatchlist(c *gin.Context) {
	stocks, err := h.stockService.ListWatchlist(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newStockListItems(stocks))
}

// AddToWatchlist handles adding a stock to the watchlist.
// @Summary     Watch stock
// @Tags        watchlist
// @Produce     json
// @Param       symbol path string true "Ticker symbol"
// @Success     200 {object} MessageResponse "Added"
// @Failure     400 {object} ErrorResponse "Malformed ticker"
// @Failure     404 {object} ErrorResponse "Stock not found"
// @Router      /stocks/{symbol}/watchlist [post]
func (h *StockHandler) AddToWatchlist(c *gin.Context) {
	symbol, ok := bindSymbol(c)
	if !ok {
		return
	}
	stock, err := h.stockService.AddToWatchlist(c.Request.Context(), symbol)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(services.AuditWatchlistAdd, "stock", stock.ID, c.ClientIP(),
		map[string]any{"symbol": stock.Symbol})

	c.JSON(http.StatusOK, MessageResponse{Message: fmt.Sprintf("%s added to watchlist successfully", strings.ToUpper(stock.Symbol))})
}

// RemoveFromWatchlist handles removing a stock from the watchlist.
// @Summary     Unwatch stock
// @Tags        watchlist
// @Produce     json
// @Param       symbol path string true "Ticker symbol"
// @Success     200 {object} MessageResponse "Removed"
// @Failure     400 {object} ErrorResponse "Malformed ticker"
// @Failure     404 {object} ErrorResponse "Stock not found"
// @Router      /stocks/{symbol}/watchlist [delete]
func (h *StockHandler) RemoveFromWatchlist(c *gin.Context) {
	symbol, ok := bindSymbol(c)
	if !ok {
		return
	}
	stock, err := h.stockService.RemoveFromWatchlist(c.Request.Context(), symbol)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(services.AuditWatchlistRemove, "stock", stock.ID, c.ClientIP(),
		map[string]any{"symbol": stock.Symbol})

	c.JSON(http.StatusOK, MessageResponse{Message: fmt.Sprintf("%s removed from watchlist successfully", strings.ToUpper(stock.Symbol))})
}
