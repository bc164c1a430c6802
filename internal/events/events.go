// Package events publishes executed trades to downstream consumers.
package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TradeEvent is the message published for every committed trade.
type TradeEvent struct {
	TransactionID string          `json:"transaction_id"`
	PortfolioID   string          `json:"portfolio_id"`
	Symbol        string          `json:"symbol"`
	Side          string          `json:"side"`
	Quantity      int64           `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Total         decimal.Decimal `json:"total"`
	NewBalance    decimal.Decimal `json:"new_balance"`
	NetWorth      decimal.Decimal `json:"net_worth"`
	ExecutedAt    time.Time       `json:"executed_at"`
}

// Publisher delivers trade events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	PublishTrade(ctx context.Context, event TradeEvent) error
	Close() error
}

// NopPublisher discards every event. It is used when no broker is configured.
type NopPublisher struct{}

// PublishTrade implements Publisher.
func (NopPublisher) PublishTrade(context.Context, TradeEvent) error { return nil }

// Close implements Publisher.
func (NopPublisher) Close() error { return nil }
