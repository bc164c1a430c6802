package services

import (
	"context"
	"strings"
	"time"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/models"
	"stockfolio/internal/quotes"
	"stockfolio/internal/valuation"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const stockTransactionsLimit = 50

// stockService handles stock, watchlist and price business logic.
type stockService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewStockService creates a new StockServicer.
func NewStockService(db *gorm.DB) StockServicer {
	return &stockService{db: db, now: time.Now}
}

// ListStocks returns stocks ordered by symbol, optionally filtered by a
// case-insensitive match on symbol or name.
func (s *stockService) ListStocks(ctx context.Context, search string) ([]StockSummary, error) {
	db := s.db.WithContext(ctx)

	q := db.Order("symbol ASC")
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(symbol) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}
	var stocks []models.Stock
	if err := q.Find(&stocks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return summarizeStocks(db, stocks)
}

// summarizeStocks adds the shares held across live portfolios to each stock.
func summarizeStocks(db *gorm.DB, stocks []models.Stock) ([]StockSummary, error) {
	holdings, err := liveHoldings(db, "")
	if err != nil {
		return nil, err
	}
	type totals struct {
		shares int64
		cost   decimal.Decimal
	}
	held := make(map[string]totals)
	for _, h := range holdings {
		t := held[h.StockID]
		t.shares += h.Quantity
		t.cost = t.cost.Add(h.AvgBuyPrice.Mul(decimal.NewFromInt(h.Quantity)))
		held[h.StockID] = t
	}

	summaries := make([]StockSummary, len(stocks))
	for i, st := range stocks {
		t := held[st.ID]
		summaries[i] = StockSummary{
			Stock:           st,
			TotalSharesHeld: t.shares,
			TotalValueHeld:  st.CurrentPrice.Mul(decimal.NewFromInt(t.shares)),
			TotalCostBasis:  t.cost,
		}
	}
	return summaries, nil
}

// GetStock returns a stock with every holding of it and its trade history.
func (s *stockService) GetStock(ctx context.Context, symbol string) (*StockDetail, error) {
	db := s.db.WithContext(ctx)

	stock, err := findStock(db, symbol)
	if err != nil {
		return nil, err
	}

	var holdings []models.Holding
	if err := db.Preload("Stock").
		Joins("JOIN portfolios ON portfolios.id = holdings.portfolio_id AND portfolios.deleted_at IS NULL").
		Where("holdings.stock_id = ?", stock.ID).
		Order("holdings.quantity DESC").
		Find(&holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	names, err := portfolioNames(db, holdings)
	if err != nil {
		return nil, err
	}

	var transactions []models.Transaction
	if err := db.Preload("Portfolio", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("stock_id = ?", stock.ID).
		Order("timestamp DESC").Order("id DESC").
		Limit(stockTransactionsLimit).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for i := range transactions {
		transactions[i].Stock = *stock
	}

	detail := &StockDetail{
		Stock:        *stock,
		Holdings:     make([]ValuedHolding, len(holdings)),
		Transactions: transactions,
	}
	for i, h := range holdings {
		hv := valuation.ValueHolding(positionOf(h), stock.CurrentPrice)
		detail.Holdings[i] = ValuedHolding{Holding: h, PortfolioName: names[h.PortfolioID], Value: hv}
		detail.TotalShares += h.Quantity
		detail.TotalValue = detail.TotalValue.Add(hv.CurrentValue)
		detail.TotalProfitLoss = detail.TotalProfitLoss.Add(hv.ProfitLoss)
	}
	return detail, nil
}

// portfolioNames maps the portfolio IDs of holdings to their names.
func portfolioNames(db *gorm.DB, holdings []models.Holding) (map[string]string, error) {
	names := make(map[string]string)
	if len(holdings) == 0 {
		return names, nil
	}
	ids := make([]string, len(holdings))
	for i, h := range holdings {
		ids[i] = h.PortfolioID
	}
	var portfolios []models.Portfolio
	if err := db.Where("id IN ?", ids).Find(&portfolios).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, p := range portfolios {
		names[p.ID] = p.Name
	}
	return names, nil
}

// GetMarketData returns the stock's move against the previous close.
func (s *stockService) GetMarketData(ctx context.Context, symbol string) (*MarketData, error) {
	stock, err := findStock(s.db.WithContext(ctx), symbol)
	if err != nil {
		return nil, err
	}
	if !stock.CurrentPrice.IsPositive() {
		return nil, apperrors.ErrQuoteUnavailable
	}

	md := &MarketData{
		Symbol:        stock.Symbol,
		Name:          stock.Name,
		Price:         stock.CurrentPrice,
		PreviousClose: stock.PreviousClose,
		Change:        stock.CurrentPrice.Sub(stock.PreviousClose),
		ChangePercent: stock.ChangePercent,
		Volume:        stock.Volume,
		Status:        marketStatus(s.now()),
		PriceVersion:  stock.PriceVersion,
		UpdatedAt:     stock.PriceUpdatedAt,
	}
	if stock.ChangePercent.IsZero() {
		md.ChangePercent = valuation.Percentage(md.Change, stock.PreviousClose)
	}
	return md, nil
}

var newYork = loadNewYork()

func loadNewYork() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.FixedZone("EST", -5*60*60)
	}
	return loc
}

// marketStatus reports whether US regular trading hours (9:30 to 16:00
// Eastern, weekdays) are in progress at t.
func marketStatus(t time.Time) string {
	et := t.In(newYork)
	if et.Weekday() == time.Saturday || et.Weekday() == time.Sunday {
		return quotes.StatusAfterHours
	}
	minutes := et.Hour()*60 + et.Minute()
	if minutes >= 9*60+30 && minutes < 16*60 {
		return quotes.StatusMarketOpen
	}
	return quotes.StatusAfterHours
}

// GetPrices returns the current ledger price of every stock.
func (s *stockService) GetPrices(ctx context.Context) (valuation.Prices, error) {
	var stocks []models.Stock
	if err := s.db.WithContext(ctx).Select("symbol", "current_price").Find(&stocks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	prices := make(valuation.Prices, len(stocks))
	for _, st := range stocks {
		prices[st.Symbol] = st.CurrentPrice
	}
	return prices, nil
}

// ListWatchlist returns watched stocks ordered by symbol.
func (s *stockService) ListWatchlist(ctx context.Context) ([]StockSummary, error) {
	db := s.db.WithContext(ctx)
	var stocks []models.Stock
	if err := db.Where("watchlist = ?", true).Order("symbol ASC").Find(&stocks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return summarizeStocks(db, stocks)
}

// AddToWatchlist flags a stock as watched. Adding twice is a no-op.
func (s *stockService) AddToWatchlist(ctx context.Context, symbol string) (*models.Stock, error) {
	return s.setWatchlist(ctx, symbol, true)
}

// RemoveFromWatchlist clears the watched flag. Removing twice is a no-op.
func (s *stockService) RemoveFromWatchlist(ctx context.Context, symbol string) (*models.Stock, error) {
	return s.setWatchlist(ctx, symbol, false)
}

func (s *stockService) setWatchlist(ctx context.Context, symbol string, watched bool) (*models.Stock, error) {
	db := s.db.WithContext(ctx)
	stock, err := findStock(db, symbol)
	if err != nil {
		return nil, err
	}
	if err := db.Model(&models.Stock{}).Where("id = ?", stock.ID).Update("watchlist", watched).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	stock.Watchlist = watched
	return stock, nil
}

// TrackedSymbols returns every stock symbol for the quote feed.
func (s *stockService) TrackedSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	if err := s.db.WithContext(ctx).Model(&models.Stock{}).Order("symbol ASC").Pluck("symbol", &symbols).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return symbols, nil
}

// ApplyQuotes writes a batch of quotes onto the stock rows in one
// transaction, bumping each row's price version. Unknown symbols and
// non-positive prices are skipped; the quotes actually stored are returned
// with their symbols normalized.
func (s *stockService) ApplyQuotes(ctx context.Context, batch []quotes.Quote) ([]quotes.Quote, error) {
	if len(batch) == 0 {
		return nil, nil
	}
	var stored []quotes.Quote
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stored = stored[:0]
		for _, q := range batch {
			if !q.Price.IsPositive() {
				continue
			}
			q.Symbol = normalizeSymbol(q.Symbol)
			updatedAt := q.Timestamp
			if updatedAt.IsZero() {
				updatedAt = s.now()
			}
			updates := map[string]any{
				"current_price":    q.Price,
				"change_percent":   q.ChangePercent.Round(4),
				"volume":           q.Volume,
				"price_version":    gorm.Expr("price_version + 1"),
				"price_updated_at": updatedAt.UTC(),
			}
			if q.PreviousClose.IsPositive() {
				updates["previous_close"] = q.PreviousClose
			}
			res := tx.Model(&models.Stock{}).
				Where("symbol = ?", q.Symbol).
				Updates(updates)
			if res.Error != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
			}
			if res.RowsAffected == 0 {
				continue
			}
			stored = append(stored, q)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}
