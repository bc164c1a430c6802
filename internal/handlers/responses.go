package handlers

import (
	"time"

	"stockfolio/internal/models"
	"stockfolio/internal/services"
	"stockfolio/internal/valuation"
)

// PortfolioResponse is a portfolio with its valuation.
type PortfolioResponse struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Description          string    `json:"description"`
	HoldingsCount        int       `json:"holdings_count"`
	TotalValue           float64   `json:"total_value"`
	TotalCostBasis       float64   `json:"total_cost_basis"`
	TotalProfitLoss      float64   `json:"total_profit_loss"`
	ProfitLossPercentage float64   `json:"profit_loss_percentage"`
	CreatedAt            time.Time `json:"created_at"`
}

func newPortfolioResponse(s services.PortfolioSummary) PortfolioResponse {
	return PortfolioResponse{
		ID:                   s.Portfolio.ID,
		Name:                 s.Portfolio.Name,
		Description:          s.Portfolio.Description,
		HoldingsCount:        s.HoldingsCount,
		TotalValue:           money(s.Value.TotalValue),
		TotalCostBasis:       money(s.Value.TotalCostBasis),
		TotalProfitLoss:      money(s.Value.TotalProfitLoss),
		ProfitLossPercentage: money(s.Value.ProfitLossPercentage),
		CreatedAt:            s.Portfolio.CreatedAt,
	}
}

// PortfolioInfo is the bare portfolio record.
type PortfolioInfo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func newPortfolioInfo(p models.Portfolio) PortfolioInfo {
	return PortfolioInfo{ID: p.ID, Name: p.Name, Description: p.Description, CreatedAt: p.CreatedAt}
}

// HoldingResponse is one position valued at the current price.
type HoldingResponse struct {
	ID                   string  `json:"id"`
	PortfolioID          string  `json:"portfolio_id"`
	PortfolioName        string  `json:"portfolio_name,omitempty"`
	StockID              string  `json:"stock_id"`
	Symbol               string  `json:"symbol"`
	Name                 string  `json:"name"`
	Quantity             int64   `json:"quantity"`
	AvgBuyPrice          float64 `json:"avg_buy_price"`
	CurrentPrice         float64 `json:"current_price"`
	CurrentValue         float64 `json:"current_value"`
	CostBasis            float64 `json:"cost_basis"`
	ProfitLoss           float64 `json:"profit_loss"`
	ProfitLossPercentage float64 `json:"profit_loss_percentage"`
}

func newHoldingResponse(h services.ValuedHolding) HoldingResponse {
	return HoldingResponse{
		ID:                   h.Holding.ID,
		PortfolioID:          h.Holding.PortfolioID,
		PortfolioName:        h.PortfolioName,
		StockID:              h.Holding.StockID,
		Symbol:               h.Holding.Stock.Symbol,
		Name:                 h.Holding.Stock.Name,
		Quantity:             h.Holding.Quantity,
		AvgBuyPrice:          money(h.Holding.AvgBuyPrice),
		CurrentPrice:         money(h.Value.Price),
		CurrentValue:         money(h.Value.CurrentValue),
		CostBasis:            money(h.Value.CostBasis),
		ProfitLoss:           money(h.Value.ProfitLoss),
		ProfitLossPercentage: money(h.Value.ProfitLossPercentage),
	}
}

func newHoldingResponses(holdings []services.ValuedHolding) []HoldingResponse {
	out := make([]HoldingResponse, len(holdings))
	for i, h := range holdings {
		out[i] = newHoldingResponse(h)
	}
	return out
}

// TransactionResponse is one executed trade.
type TransactionResponse struct {
	ID            string           `json:"id"`
	Type          models.TradeType `json:"type" example:"BUY"`
	Symbol        string           `json:"symbol"`
	Name          string           `json:"name"`
	PortfolioID   string           `json:"portfolio_id"`
	PortfolioName string           `json:"portfolio_name"`
	Quantity      int64            `json:"quantity"`
	Price         float64          `json:"price"`
	Total         float64          `json:"total"`
	Timestamp     time.Time        `json:"timestamp"`
}

func newTransactionResponse(t models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID,
		Type:          t.Type,
		Symbol:        t.Stock.Symbol,
		Name:          t.Stock.Name,
		PortfolioID:   t.PortfolioID,
		PortfolioName: t.Portfolio.Name,
		Quantity:      t.Quantity,
		Price:         money(t.Price),
		Total:         money(t.Total()),
		Timestamp:     t.Timestamp,
	}
}

func newTransactionResponses(txns []models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		out[i] = newTransactionResponse(t)
	}
	return out
}

// StockResponse is a tradable stock and its versioned price.
type StockResponse struct {
	ID             string     `json:"id"`
	Symbol         string     `json:"symbol"`
	Name           string     `json:"name"`
	CurrentPrice   float64    `json:"current_price"`
	PreviousClose  float64    `json:"previous_close"`
	ChangePercent  float64    `json:"change_percent"`
	Volume         int64      `json:"volume"`
	Watchlist      bool       `json:"watchlist"`
	PriceVersion   int64      `json:"price_version"`
	PriceUpdatedAt *time.Time `json:"price_updated_at"`
}

func newStockResponse(s models.Stock) StockResponse {
	return StockResponse{
		ID:             s.ID,
		Symbol:         s.Symbol,
		Name:           s.Name,
		CurrentPrice:   money(s.CurrentPrice),
		PreviousClose:  money(s.PreviousClose),
		ChangePercent:  money(s.ChangePercent),
		Volume:         s.Volume,
		Watchlist:      s.Watchlist,
		PriceVersion:   s.PriceVersion,
		PriceUpdatedAt: s.PriceUpdatedAt,
	}
}

// StockListItem is a stock with the shares held across all portfolios.
type StockListItem struct {
	StockResponse
	TotalSharesHeld int64   `json:"total_shares_held"`
	TotalValueHeld  float64 `json:"total_value_held"`
	TotalCostBasis  float64 `json:"total_cost_basis"`
}

func newStockListItems(stocks []services.StockSummary) []StockListItem {
	out := make([]StockListItem, len(stocks))
	for i, s := range stocks {
		out[i] = StockListItem{
			StockResponse:   newStockResponse(s.Stock),
			TotalSharesHeld: s.TotalSharesHeld,
			TotalValueHeld:  money(s.TotalValueHeld),
			TotalCostBasis:  money(s.TotalCostBasis),
		}
	}
	return out
}

// SnapshotResponse is one point of net-worth history.
type SnapshotResponse struct {
	ID             string                `json:"id"`
	Date           string                `json:"date" example:"2026-01-31"`
	Timestamp      time.Time             `json:"timestamp"`
	AccountBalance float64               `json:"account_balance"`
	PortfolioValue float64               `json:"portfolio_value"`
	TotalNetWorth  float64               `json:"total_net_worth"`
	Source         models.SnapshotSource `json:"source" example:"trade"`
}

func newSnapshotResponse(s models.NetWorthSnapshot) SnapshotResponse {
	return SnapshotResponse{
		ID:             s.ID,
		Date:           s.RecordedAt.Format(time.DateOnly),
		Timestamp:      s.RecordedAt,
		AccountBalance: money(s.AccountBalance),
		PortfolioValue: money(s.PortfolioValue),
		TotalNetWorth:  money(s.TotalNetWorth),
		Source:         s.Source,
	}
}

// ValuationSummary is a portfolio-level valuation.
type ValuationSummary struct {
	TotalValue           float64 `json:"total_value"`
	TotalCostBasis       float64 `json:"total_cost_basis"`
	TotalProfitLoss      float64 `json:"total_profit_loss"`
	ProfitLossPercentage float64 `json:"profit_loss_percentage"`
}

func newValuationSummary(v valuation.PortfolioValue) ValuationSummary {
	return ValuationSummary{
		TotalValue:           money(v.TotalValue),
		TotalCostBasis:       money(v.TotalCostBasis),
		TotalProfitLoss:      money(v.TotalProfitLoss),
		ProfitLossPercentage: money(v.ProfitLossPercentage),
	}
}
