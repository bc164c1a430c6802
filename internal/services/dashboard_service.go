package services

import (
	"context"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/models"
	"stockfolio/internal/valuation"

	"gorm.io/gorm"
)

const recentTransactionsLimit = 10

// dashboardService assembles the dashboard from the portfolio list, the
// cash balance and the full trade history.
type dashboardService struct {
	db         *gorm.DB
	portfolios PortfolioServicer
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB, portfolios PortfolioServicer) DashboardServicer {
	return &dashboardService{db: db, portfolios: portfolios}
}

// GetDashboard returns the account-wide view. Unrealized figures come from
// current holdings; realized figures from matching every sell against
// earlier buys.
func (s *dashboardService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	db := s.db.WithContext(ctx)

	summaries, err := s.portfolios.ListPortfolios(ctx)
	if err != nil {
		return nil, err
	}
	account, err := loadBalance(db)
	if err != nil {
		return nil, err
	}

	values := make([]valuation.PortfolioValue, len(summaries))
	var holdingsCount int64
	for i, ps := range summaries {
		values[i] = ps.Value
		holdingsCount += int64(ps.HoldingsCount)
	}
	av := valuation.ValueAccount(values, account.Balance)

	var history []models.Transaction
	if err := db.Preload("Stock").Order("timestamp ASC").Order("id ASC").Find(&history).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	trades := make([]valuation.Trade, len(history))
	for i, t := range history {
		trades[i] = valuation.Trade{
			Portfolio: t.PortfolioID,
			Symbol:    t.Stock.Symbol,
			Sell:      t.Type == models.TradeSell,
			Quantity:  t.Quantity,
			Price:     t.Price,
			At:        t.Timestamp,
		}
	}
	realized := valuation.RealizedPL(trades)

	var recent []models.Transaction
	if err := db.Preload("Stock").
		Preload("Portfolio", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Order("timestamp DESC").Order("id DESC").
		Limit(recentTransactionsLimit).
		Find(&recent).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totalPL := av.TotalProfitLoss.Add(realized.Amount)
	invested := av.TotalCostBasis.Add(realized.SoldCostBasis)

	return &Dashboard{
		Portfolios:         summaries,
		Account:            av,
		Realized:           realized,
		TotalPLAmount:      totalPL,
		TotalPLPercentage:  valuation.Percentage(totalPL, invested),
		TotalInvested:      invested,
		TotalHoldings:      holdingsCount,
		RecentTransactions: recent,
	}, nil
}
