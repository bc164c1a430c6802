package services

import (
	"errors"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// positionState distinguishes an open position from none at all. A
// position never exists with zero shares: selling the last share closes it
// and removes the holding row.
type positionState int

const (
	positionNone positionState = iota
	positionOpen
)

// position is a (portfolio, stock) pair and the holding behind it, if any.
type position struct {
	state   positionState
	stored  bool
	holding models.Holding
}

// lockPosition reads the holding for (portfolioID, stockID) FOR UPDATE.
func lockPosition(tx *gorm.DB, portfolioID, stockID string) (position, error) {
	var holdings []models.Holding
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("portfolio_id = ? AND stock_id = ?", portfolioID, stockID).
		Limit(1).
		Find(&holdings).Error
	if err != nil {
		return position{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(holdings) == 0 {
		return position{
			state:   positionNone,
			holding: models.Holding{PortfolioID: portfolioID, StockID: stockID},
		}, nil
	}
	return position{state: positionOpen, stored: true, holding: holdings[0]}, nil
}

func (p position) quantity() int64 {
	if p.state == positionNone {
		return 0
	}
	return p.holding.Quantity
}

// buy adds qty shares at price, re-weighting the average buy price.
func (p position) buy(qty int64, price decimal.Decimal) position {
	if p.state == positionNone {
		p.state = positionOpen
		p.holding.Quantity = qty
		p.holding.AvgBuyPrice = price
		return p
	}

	oldQty := decimal.NewFromInt(p.holding.Quantity)
	addQty := decimal.NewFromInt(qty)
	cost := oldQty.Mul(p.holding.AvgBuyPrice).Add(addQty.Mul(price))
	p.holding.Quantity += qty
	p.holding.AvgBuyPrice = cost.Div(decimal.NewFromInt(p.holding.Quantity)).Round(8)
	return p
}

// sell removes qty shares; the average buy price is unchanged. The caller
// has already checked qty <= quantity().
func (p position) sell(qty int64) position {
	p.holding.Quantity -= qty
	if p.holding.Quantity == 0 {
		p.state = positionNone
	}
	return p
}

// save writes the position back: create, update, or delete the row.
func (p position) save(tx *gorm.DB) (position, error) {
	var err error
	switch {
	case p.state == positionOpen && !p.stored:
		err = tx.Create(&p.holding).Error
		p.stored = true
	case p.state == positionOpen:
		err = tx.Model(&models.Holding{}).Where("id = ?", p.holding.ID).Updates(map[string]any{
			"quantity":      p.holding.Quantity,
			"avg_buy_price": p.holding.AvgBuyPrice,
		}).Error
	case p.stored:
		err = tx.Delete(&models.Holding{}, "id = ?", p.holding.ID).Error
		p.stored = false
	}
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return p, apperrors.Wrap(apperrors.ErrConcurrencyConflict, err)
		}
		return p, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return p, nil
}
