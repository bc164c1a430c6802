package services

import (
	"context"
	"errors"
	"strings"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/models"
	"stockfolio/internal/valuation"

	"gorm.io/gorm"
)

const (
	portfolioTransactionsLimit = 20
	topHoldingsCount           = 5
	maxPortfolioNameLength     = 100
)

// portfolioService handles portfolio business logic.
type portfolioService struct {
	db *gorm.DB
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB) PortfolioServicer {
	return &portfolioService{db: db}
}

// ListPortfolios returns every live portfolio with its holdings count and
// valuation, oldest first.
func (s *portfolioService) ListPortfolios(ctx context.Context) ([]PortfolioSummary, error) {
	db := s.db.WithContext(ctx)

	var portfolios []models.Portfolio
	if err := db.Order("created_at ASC").Order("id ASC").Find(&portfolios).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	holdings, err := liveHoldings(db, "")
	if err != nil {
		return nil, err
	}
	groups := groupByPortfolio(holdings)

	summaries := make([]PortfolioSummary, len(portfolios))
	for i, p := range portfolios {
		group := groups[p.ID]
		summaries[i] = PortfolioSummary{
			Portfolio:     p,
			HoldingsCount: len(group),
			Value:         valueHoldings(group),
		}
	}
	return summaries, nil
}

// GetPortfolio returns a portfolio with its holdings ranked by current
// value and its latest transactions.
func (s *portfolioService) GetPortfolio(ctx context.Context, id string) (*PortfolioDetail, error) {
	db := s.db.WithContext(ctx)

	portfolio, err := findPortfolio(db, id)
	if err != nil {
		return nil, err
	}

	holdings, err := liveHoldings(db, "holdings.portfolio_id = ?", portfolio.ID)
	if err != nil {
		return nil, err
	}

	var transactions []models.Transaction
	if err := db.Preload("Stock").
		Where("portfolio_id = ?", portfolio.ID).
		Order("timestamp DESC").Order("id DESC").
		Limit(portfolioTransactionsLimit).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for i := range transactions {
		transactions[i].Portfolio = *portfolio
	}

	summary := valueHoldings(holdings)
	bySymbol := make(map[string]models.Holding, len(holdings))
	for _, h := range holdings {
		bySymbol[h.Stock.Symbol] = h
	}

	detail := &PortfolioDetail{
		Portfolio:    *portfolio,
		Holdings:     make([]ValuedHolding, 0, len(holdings)),
		Transactions: transactions,
		Summary:      summary,
	}
	for hv := range valuation.RankTopHoldings(summary.Holdings, len(summary.Holdings)) {
		detail.Holdings = append(detail.Holdings, ValuedHolding{
			Holding:       bySymbol[hv.Symbol],
			PortfolioName: portfolio.Name,
			Value:         hv,
		})
	}
	detail.TopHoldings = detail.Holdings[:min(topHoldingsCount, len(detail.Holdings))]

	return detail, nil
}

// GetPortfolioValue returns just the valuation of one portfolio.
func (s *portfolioService) GetPortfolioValue(ctx context.Context, id string) (*PortfolioSummary, error) {
	db := s.db.WithContext(ctx)

	portfolio, err := findPortfolio(db, id)
	if err != nil {
		return nil, err
	}
	holdings, err := liveHoldings(db, "holdings.portfolio_id = ?", portfolio.ID)
	if err != nil {
		return nil, err
	}

	return &PortfolioSummary{
		Portfolio:     *portfolio,
		HoldingsCount: len(holdings),
		Value:         valueHoldings(holdings),
	}, nil
}

// CreatePortfolio creates a portfolio. Names are trimmed and must be unique
// among live portfolios.
func (s *portfolioService) CreatePortfolio(ctx context.Context, name, description string) (*models.Portfolio, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Portfolio name is required")
	}
	if len(name) > maxPortfolioNameLength {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Portfolio name must be at most 100 characters")
	}

	portfolio := &models.Portfolio{Name: name, Description: strings.TrimSpace(description)}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Portfolio{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return apperrors.ErrDuplicatePortfolio
		}
		if err := tx.Create(portfolio).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrDuplicatePortfolio
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return portfolio, nil
}

// DeletePortfolio removes a portfolio and its holdings. The portfolio row
// is soft-deleted so its transactions still resolve; cash is not touched.
func (s *portfolioService) DeletePortfolio(ctx context.Context, id string) (*models.Portfolio, error) {
	var portfolio *models.Portfolio
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		portfolio, err = lockPortfolio(tx, id, "UPDATE")
		if err != nil {
			return err
		}
		if err := tx.Where("portfolio_id = ?", portfolio.ID).Delete(&models.Holding{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(portfolio).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return portfolio, nil
}
