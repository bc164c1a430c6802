package models

import (
	"time"

	"stockfolio/internal/uuid"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Holding is a portfolio's open position in one stock. A row exists only
// while Quantity > 0.
type Holding struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	PortfolioID string          `gorm:"type:uuid;not null;uniqueIndex:uq_holdings_portfolio_stock" json:"portfolio_id"`
	StockID     string          `gorm:"type:uuid;not null;uniqueIndex:uq_holdings_portfolio_stock" json:"stock_id"`
	Quantity    int64           `gorm:"not null;check:quantity >= 0" json:"quantity"`
	AvgBuyPrice decimal.Decimal `gorm:"type:numeric(20,8);not null" json:"avg_buy_price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Stock Stock `gorm:"foreignKey:StockID" json:"stock"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (h *Holding) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.New()
	}
	return nil
}
