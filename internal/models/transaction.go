package models

import (
	"time"

	"stockfolio/internal/uuid"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TradeType is the side of a trade.
type TradeType string

const (
	TradeBuy  TradeType = "BUY"
	TradeSell TradeType = "SELL"
)

// Transaction is an executed trade. Rows are append-only: never updated,
// never deleted, and stamped with the server clock.
type Transaction struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	PortfolioID string          `gorm:"type:uuid;not null;index" json:"portfolio_id"`
	StockID     string          `gorm:"type:uuid;not null;index" json:"stock_id"`
	Type        TradeType       `gorm:"size:4;not null" json:"type"`
	Quantity    int64           `gorm:"not null;check:quantity > 0" json:"quantity"`
	Price       decimal.Decimal `gorm:"type:numeric(20,8);not null" json:"price"`
	Timestamp   time.Time       `gorm:"not null;index" json:"timestamp"`

	Stock     Stock     `gorm:"foreignKey:StockID" json:"stock"`
	Portfolio Portfolio `gorm:"foreignKey:PortfolioID" json:"portfolio"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New()
	}
	return nil
}

// Total returns quantity * price.
func (t *Transaction) Total() decimal.Decimal {
	return t.Price.Mul(decimal.NewFromInt(t.Quantity))
}
