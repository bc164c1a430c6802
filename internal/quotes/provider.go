// Package quotes is the source of live stock prices. A Provider fetches
// quotes from an external service; the Feed polls it, persists the result
// to the ledger and fans quotes out to subscribers.
package quotes

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusMarketOpen = "MARKET OPEN"
	StatusAfterHours = "AFTER HOURS"
)

// Quote is one observed price for a symbol. Version increases by one each
// time the Feed accepts a new quote for the symbol.
type Quote struct {
	Symbol        string
	Price         decimal.Decimal
	PreviousClose decimal.Decimal
	ChangePercent decimal.Decimal
	Volume        int64
	MarketOpen    bool
	Timestamp     time.Time
	Version       int64
}

// Status returns the market session label shown to clients.
func (q Quote) Status() string {
	if q.MarketOpen {
		return StatusMarketOpen
	}
	return StatusAfterHours
}

// FetchError represents a failed quote fetch for a specific symbol.
type FetchError struct {
	Symbol string
	Err    error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch quote for %s: %v", e.Symbol, e.Err)
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error { return e.Err }

// Provider fetches current quotes for a set of symbols.
type Provider interface {
	// Name returns the provider's display name.
	Name() string

	// FetchQuotes returns as many quotes as it can, plus one error per
	// symbol it could not price.
	FetchQuotes(ctx context.Context, symbols []string) ([]Quote, []FetchError)
}

// changePercent returns the move from prev to price in percent, or zero
// without a previous close.
func changePercent(price, prev decimal.Decimal) decimal.Decimal {
	if !prev.IsPositive() {
		return decimal.Zero
	}
	return price.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100))
}
