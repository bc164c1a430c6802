package services

import (
	"context"
	"time"

	"stockfolio/internal/models"
	"stockfolio/internal/pagination"
	"stockfolio/internal/quotes"
	"stockfolio/internal/valuation"

	"github.com/shopspring/decimal"
)

// PortfolioSummary is a portfolio with its valuation, as listed.
type PortfolioSummary struct {
	Portfolio     models.Portfolio
	HoldingsCount int
	Value         valuation.PortfolioValue
}

// ValuedHolding pairs a holding row with its valuation.
type ValuedHolding struct {
	Holding       models.Holding
	PortfolioName string
	Value         valuation.HoldingValue
}

// PortfolioDetail is one portfolio with its holdings, ordered by current
// value descending, and its most recent transactions.
type PortfolioDetail struct {
	Portfolio    models.Portfolio
	Holdings     []ValuedHolding
	Transactions []models.Transaction
	Summary      valuation.PortfolioValue
	TopHoldings  []ValuedHolding
}

// PortfolioServicer defines the contract for portfolio-related business logic.
type PortfolioServicer interface {
	ListPortfolios(ctx context.Context) ([]PortfolioSummary, error)
	GetPortfolio(ctx context.Context, id string) (*PortfolioDetail, error)
	GetPortfolioValue(ctx context.Context, id string) (*PortfolioSummary, error)
	CreatePortfolio(ctx context.Context, name, description string) (*models.Portfolio, error)
	DeletePortfolio(ctx context.Context, id string) (*models.Portfolio, error)
}

// StockSummary is a stock with the shares held across every portfolio.
type StockSummary struct {
	Stock           models.Stock
	TotalSharesHeld int64
	TotalValueHeld  decimal.Decimal
	TotalCostBasis  decimal.Decimal
}

// StockDetail is a stock with its holdings and trade history.
type StockDetail struct {
	Stock           models.Stock
	Holdings        []ValuedHolding
	Transactions    []models.Transaction
	TotalShares     int64
	TotalValue      decimal.Decimal
	TotalProfitLoss decimal.Decimal
}

// MarketData is the daily move of a stock against its previous close.
type MarketData struct {
	Symbol        string
	Name          string
	Price         decimal.Decimal
	PreviousClose decimal.Decimal
	Change        decimal.Decimal
	ChangePercent decimal.Decimal
	Volume        int64
	Status        string
	PriceVersion  int64
	UpdatedAt     *time.Time
}

// StockServicer defines the contract for stock and watchlist business logic.
// It is also the ledger side of the quote feed.
type StockServicer interface {
	ListStocks(ctx context.Context, search string) ([]StockSummary, error)
	GetStock(ctx context.Context, symbol string) (*StockDetail, error)
	GetMarketData(ctx context.Context, symbol string) (*MarketData, error)
	GetPrices(ctx context.Context) (valuation.Prices, error)
	ListWatchlist(ctx context.Context) ([]StockSummary, error)
	AddToWatchlist(ctx context.Context, symbol string) (*models.Stock, error)
	RemoveFromWatchlist(ctx context.Context, symbol string) (*models.Stock, error)
	TrackedSymbols(ctx context.Context) ([]string, error)
	ApplyQuotes(ctx context.Context, quotes []quotes.Quote) ([]quotes.Quote, error)
}

// TradeRequest is a buy or sell instruction. ClientPrice is the price the
// client saw; execution always uses the ledger price.
type TradeRequest struct {
	Symbol      string
	PortfolioID string
	Quantity    int64
	ClientPrice *decimal.Decimal
}

// TradeResult is the committed outcome of a trade.
type TradeResult struct {
	Transaction *models.Transaction
	NewBalance  decimal.Decimal
	Snapshot    *models.NetWorthSnapshot
}

// TradeServicer is the only writer of holdings, transactions and the cash
// balance.
type TradeServicer interface {
	Buy(ctx context.Context, req TradeRequest) (*TradeResult, error)
	Sell(ctx context.Context, req TradeRequest) (*TradeResult, error)
}

// NetWorthServicer defines the contract for net-worth snapshots.
type NetWorthServicer interface {
	RecordSnapshot(ctx context.Context, source models.SnapshotSource) (*models.NetWorthSnapshot, error)
	GetHistory(ctx context.Context, limit int) ([]models.NetWorthSnapshot, error)
}

// AccountServicer defines the contract for the cash account.
type AccountServicer interface {
	GetBalance(ctx context.Context) (*models.AccountBalance, error)
}

// Dashboard aggregates every portfolio, the cash balance, realized and
// unrealized profit/loss, and the latest trades.
type Dashboard struct {
	Portfolios         []PortfolioSummary
	Account            valuation.AccountValue
	Realized           valuation.Realized
	TotalPLAmount      decimal.Decimal
	TotalPLPercentage  decimal.Decimal
	TotalInvested      decimal.Decimal
	TotalHoldings      int64
	RecentTransactions []models.Transaction
}

// DashboardServicer defines the contract for the dashboard view.
type DashboardServicer interface {
	GetDashboard(ctx context.Context) (*Dashboard, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Search string
	Type   *models.TradeType
	Page   pagination.PageRequest
}

// TransactionServicer defines the contract for reading the trade history.
type TransactionServicer interface {
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
