package services

import (
	"errors"
	"strings"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/models"
	"stockfolio/internal/uuid"
	"stockfolio/internal/valuation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// normalizeSymbol upper-cases and trims a ticker.
func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// findStock loads a stock by symbol, case-insensitively.
func findStock(db *gorm.DB, symbol string) (*models.Stock, error) {
	var stock models.Stock
	if err := db.Where("symbol = ?", normalizeSymbol(symbol)).First(&stock).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStockNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &stock, nil
}

// findPortfolio loads a live portfolio by ID.
func findPortfolio(db *gorm.DB, id string) (*models.Portfolio, error) {
	if !uuid.IsValid(id) {
		return nil, apperrors.ErrPortfolioNotFound
	}
	var portfolio models.Portfolio
	if err := db.Where("id = ?", id).First(&portfolio).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPortfolioNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &portfolio, nil
}

// lockPortfolio loads a live portfolio and row-locks it for the rest of tx.
// Trades take a SHARE lock and deletes take UPDATE, so a trade and a delete
// on the same portfolio serialize. The portfolio is always locked before
// the account and holding rows.
func lockPortfolio(tx *gorm.DB, id, strength string) (*models.Portfolio, error) {
	if !uuid.IsValid(id) {
		return nil, apperrors.ErrPortfolioNotFound
	}
	var portfolio models.Portfolio
	err := tx.Clauses(clause.Locking{Strength: strength}).
		Where("id = ?", id).
		First(&portfolio).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPortfolioNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &portfolio, nil
}

// loadBalance reads the cash account.
func loadBalance(db *gorm.DB) (*models.AccountBalance, error) {
	var account models.AccountBalance
	if err := db.First(&account, models.AccountID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// liveHoldings returns holdings of non-deleted portfolios with their stock
// preloaded. Extra conditions narrow the set.
func liveHoldings(db *gorm.DB, query string, args ...any) ([]models.Holding, error) {
	q := db.Preload("Stock").
		Joins("JOIN portfolios ON portfolios.id = holdings.portfolio_id AND portfolios.deleted_at IS NULL")
	if query != "" {
		q = q.Where(query, args...)
	}

	var holdings []models.Holding
	if err := q.Order("holdings.created_at ASC").Find(&holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return holdings, nil
}

func positionOf(h models.Holding) valuation.Position {
	return valuation.Position{
		Symbol:      h.Stock.Symbol,
		Quantity:    h.Quantity,
		AvgBuyPrice: h.AvgBuyPrice,
	}
}

// ledgerPrices collects the current ledger price of every holding's stock.
func ledgerPrices(holdings []models.Holding) valuation.Prices {
	prices := make(valuation.Prices, len(holdings))
	for _, h := range holdings {
		prices[h.Stock.Symbol] = h.Stock.CurrentPrice
	}
	return prices
}

// valueHoldings values holdings that all belong to one portfolio.
func valueHoldings(holdings []models.Holding) valuation.PortfolioValue {
	positions := make([]valuation.Position, len(holdings))
	for i, h := range holdings {
		positions[i] = positionOf(h)
	}
	return valuation.ValuePortfolio(positions, ledgerPrices(holdings))
}

// groupByPortfolio splits holdings by portfolio ID, keeping order.
func groupByPortfolio(holdings []models.Holding) map[string][]models.Holding {
	groups := make(map[string][]models.Holding)
	for _, h := range holdings {
		groups[h.PortfolioID] = append(groups[h.PortfolioID], h)
	}
	return groups
}

// valueLedger values every live portfolio against ledger prices and adds
// the cash balance.
func valueLedger(db *gorm.DB) (valuation.AccountValue, error) {
	account, err := loadBalance(db)
	if err != nil {
		return valuation.AccountValue{}, err
	}
	holdings, err := liveHoldings(db, "")
	if err != nil {
		return valuation.AccountValue{}, err
	}

	groups := groupByPortfolio(holdings)
	values := make([]valuation.PortfolioValue, 0, len(groups))
	for _, group := range groups {
		values = append(values, valueHoldings(group))
	}
	return valuation.ValueAccount(values, account.Balance), nil
}
