package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"stockfolio/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestAccount creates the cash account with the given balance.
func CreateTestAccount(t *testing.T, db *gorm.DB, balance string) *models.AccountBalance {
	t.Helper()

	account := &models.AccountBalance{
		ID:          models.AccountID,
		Balance:     decimal.RequireFromString(balance),
		LastUpdated: time.Now().UTC(),
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestStock creates a stock priced at price with a unique symbol.
func CreateTestStock(t *testing.T, db *gorm.DB, price string) *models.Stock {
	t.Helper()
	return CreateTestStockWithSymbol(t, db, fmt.Sprintf("TST%d", nextID()), price)
}

// CreateTestStockWithSymbol creates a stock with the given symbol and price.
func CreateTestStockWithSymbol(t *testing.T, db *gorm.DB, symbol, price string) *models.Stock {
	t.Helper()

	now := time.Now().UTC()
	p := decimal.RequireFromString(price)
	stock := &models.Stock{
		Symbol:         symbol,
		Name:           symbol + " Corp",
		CurrentPrice:   p,
		PreviousClose:  p,
		PriceVersion:   1,
		PriceUpdatedAt: &now,
	}
	if err := db.Create(stock).Error; err != nil {
		t.Fatalf("failed to create test stock: %v", err)
	}
	return stock
}

// CreateTestPortfolio creates an empty portfolio with a unique name.
func CreateTestPortfolio(t *testing.T, db *gorm.DB) *models.Portfolio {
	t.Helper()

	portfolio := &models.Portfolio{
		Name:        fmt.Sprintf("Test Portfolio %d", nextID()),
		Description: "fixture",
	}
	if err := db.Create(portfolio).Error; err != nil {
		t.Fatalf("failed to create test portfolio: %v", err)
	}
	return portfolio
}

// CreateTestHolding creates a holding directly, bypassing the trade path.
func CreateTestHolding(t *testing.T, db *gorm.DB, portfolioID, stockID string, quantity int64, avgPrice string) *models.Holding {
	t.Helper()

	holding := &models.Holding{
		PortfolioID: portfolioID,
		StockID:     stockID,
		Quantity:    quantity,
		AvgBuyPrice: decimal.RequireFromString(avgPrice),
	}
	if err := db.Create(holding).Error; err != nil {
		t.Fatalf("failed to create test holding: %v", err)
	}
	return holding
}

// CreateTestTransaction records a trade row directly at the given time.
func CreateTestTransaction(t *testing.T, db *gorm.DB, portfolioID, stockID string, side models.TradeType, quantity int64, price string, at time.Time) *models.Transaction {
	t.Helper()

	txn := &models.Transaction{
		PortfolioID: portfolioID,
		StockID:     stockID,
		Type:        side,
		Quantity:    quantity,
		Price:       decimal.RequireFromString(price),
		Timestamp:   at.UTC(),
	}
	if err := db.Create(txn).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return txn
}
