package services

import (
	"context"
	"testing"
	"time"

	"stockfolio/internal/models"
	"stockfolio/internal/quotes"
	"stockfolio/internal/testutil"

	"github.com/shopspring/decimal"
)

func TestStockService_ListStocks(t *testing.T) {
	db := setupDB(t)
	aapl := testutil.CreateTestStockWithSymbol(t, db, "AAPL", "175")
	testutil.CreateTestStockWithSymbol(t, db, "MSFT", "380")
	testutil.CreateTestStockWithSymbol(t, db, "GOOGL", "140")
	p1 := testutil.CreateTestPortfolio(t, db)
	p2 := testutil.CreateTestPortfolio(t, db)
	testutil.CreateTestHolding(t, db, p1.ID, aapl.ID, 3, "150")
	testutil.CreateTestHolding(t, db, p2.ID, aapl.ID, 7, "160")
	svc := NewStockService(db)

	t.Run("ordered_with_totals", func(t *testing.T) {
		stocks, err := svc.ListStocks(context.Background(), "")
		testutil.AssertNoError(t, err)
		if len(stocks) != 3 {
			t.Fatalf("expected 3 stocks, got %d", len(stocks))
		}
		if stocks[0].Stock.Symbol != "AAPL" || stocks[2].Stock.Symbol != "MSFT" {
			t.Errorf("expected symbol order, got %s..%s", stocks[0].Stock.Symbol, stocks[2].Stock.Symbol)
		}
		if stocks[0].TotalSharesHeld != 10 {
			t.Errorf("expected 10 shares held, got %d", stocks[0].TotalSharesHeld)
		}
		testutil.AssertDecimal(t, "total_value_held", stocks[0].TotalValueHeld, "1750")
		testutil.AssertDecimal(t, "total_cost_basis", stocks[0].TotalCostBasis, "1570")
		if stocks[1].TotalSharesHeld != 0 {
			t.Errorf("expected no GOOGL held, got %d", stocks[1].TotalSharesHeld)
		}
	})

	t.Run("search_symbol_and_name", func(t *testing.T) {
		stocks, err := svc.ListStocks(context.Background(), "msf")
		testutil.AssertNoError(t, err)
		if len(stocks) != 1 || stocks[0].Stock.Symbol != "MSFT" {
			t.Fatalf("expected MSFT, got %+v", stocks)
		}

		stocks, err = svc.ListStocks(context.Background(), "corp")
		testutil.AssertNoError(t, err)
		if len(stocks) != 3 {
			t.Errorf("expected name match on all, got %d", len(stocks))
		}
	})
}

func TestStockService_GetStock(t *testing.T) {
	db := setupDB(t)
	st := testutil.CreateTestStockWithSymbol(t, db, "NVDA", "400")
	p := testutil.CreateTestPortfolio(t, db)
	testutil.CreateTestHolding(t, db, p.ID, st.ID, 4, "300")
	testutil.CreateTestTransaction(t, db, p.ID, st.ID, models.TradeBuy, 4, "300", time.Now())
	svc := NewStockService(db)

	detail, err := svc.GetStock(context.Background(), "nvda")
	testutil.AssertNoError(t, err)

	if detail.TotalShares != 4 {
		t.Errorf("expected 4 shares, got %d", detail.TotalShares)
	}
	testutil.AssertDecimal(t, "total_value", detail.TotalValue, "1600")
	testutil.AssertDecimal(t, "total_profit_loss", detail.TotalProfitLoss, "400")
	if len(detail.Holdings) != 1 || detail.Holdings[0].PortfolioName != p.Name {
		t.Errorf("expected holding in %q, got %+v", p.Name, detail.Holdings)
	}
	if len(detail.Transactions) != 1 || detail.Transactions[0].Portfolio.Name != p.Name {
		t.Error("expected transaction with portfolio attached")
	}

	_, err = svc.GetStock(context.Background(), "NOPE")
	testutil.AssertAppError(t, err, "STOCK_NOT_FOUND")
}

func TestStockService_GetMarketData(t *testing.T) {
	db := setupDB(t)
	st := testutil.CreateTestStockWithSymbol(t, db, "TSLA", "110")
	testutil.AssertNoError(t, db.Model(&models.Stock{}).Where("id = ?", st.ID).
		Update("previous_close", decimal.NewFromInt(100)).Error)

	svc := NewStockService(db).(*stockService)
	// Wednesday 2026-01-07 11:00 in New York.
	svc.now = func() time.Time { return time.Date(2026, 1, 7, 16, 0, 0, 0, time.UTC) }

	md, err := svc.GetMarketData(context.Background(), "TSLA")
	testutil.AssertNoError(t, err)

	testutil.AssertDecimal(t, "change", md.Change, "10")
	testutil.AssertDecimal(t, "change_percent", md.ChangePercent, "10")
	if md.Status != quotes.StatusMarketOpen {
		t.Errorf("expected market open, got %s", md.Status)
	}

	st0 := testutil.CreateTestStockWithSymbol(t, db, "ZERO", "0")
	_, err = svc.GetMarketData(context.Background(), st0.Symbol)
	testutil.AssertAppError(t, err, "QUOTE_UNAVAILABLE")
}

func TestMarketStatus(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"weekday_open", time.Date(2026, 1, 7, 15, 0, 0, 0, time.UTC), quotes.StatusMarketOpen},
		{"before_open", time.Date(2026, 1, 7, 14, 0, 0, 0, time.UTC), quotes.StatusAfterHours},
		{"at_close", time.Date(2026, 1, 7, 21, 0, 0, 0, time.UTC), quotes.StatusAfterHours},
		{"saturday", time.Date(2026, 1, 10, 16, 0, 0, 0, time.UTC), quotes.StatusAfterHours},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := marketStatus(tt.at); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestStockService_Watchlist(t *testing.T) {
	db := setupDB(t)
	testutil.CreateTestStockWithSymbol(t, db, "AMD", "120")
	testutil.CreateTestStockWithSymbol(t, db, "AAPL", "175")
	svc := NewStockService(db)
	ctx := context.Background()

	st, err := svc.AddToWatchlist(ctx, "amd")
	testutil.AssertNoError(t, err)
	if !st.Watchlist {
		t.Error("expected watchlist flag set")
	}
	_, err = svc.AddToWatchlist(ctx, "AMD")
	testutil.AssertNoError(t, err)
	_, err = svc.AddToWatchlist(ctx, "AAPL")
	testutil.AssertNoError(t, err)

	watched, err := svc.ListWatchlist(ctx)
	testutil.AssertNoError(t, err)
	if len(watched) != 2 || watched[0].Stock.Symbol != "AAPL" {
		t.Fatalf("expected [AAPL AMD], got %+v", watched)
	}

	st, err = svc.RemoveFromWatchlist(ctx, "AMD")
	testutil.AssertNoError(t, err)
	if st.Watchlist {
		t.Error("expected watchlist flag cleared")
	}
	watched, err = svc.ListWatchlist(ctx)
	testutil.AssertNoError(t, err)
	if len(watched) != 1 {
		t.Errorf("expected 1 watched stock, got %d", len(watched))
	}

	_, err = svc.AddToWatchlist(ctx, "XYZ")
	testutil.AssertAppError(t, err, "STOCK_NOT_FOUND")
}

func TestStockService_ApplyQuotes(t *testing.T) {
	db := setupDB(t)
	testutil.CreateTestStockWithSymbol(t, db, "AAPL", "175")
	testutil.CreateTestStockWithSymbol(t, db, "MSFT", "380")
	svc := NewStockService(db)
	ctx := context.Background()

	at := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	stored, err := svc.ApplyQuotes(ctx, []quotes.Quote{
		{Symbol: "aapl", Price: decimal.RequireFromString("180.5"), PreviousClose: decimal.NewFromInt(175), ChangePercent: decimal.RequireFromString("3.142857"), Volume: 1200, Timestamp: at},
		{Symbol: "MSFT", Price: decimal.Zero},
		{Symbol: "UNKNOWN", Price: decimal.NewFromInt(1)},
	})
	testutil.AssertNoError(t, err)
	if len(stored) != 1 || stored[0].Symbol != "AAPL" {
		t.Fatalf("expected only AAPL stored, got %+v", stored)
	}

	var aapl, msft models.Stock
	testutil.AssertNoError(t, db.Where("symbol = ?", "AAPL").First(&aapl).Error)
	testutil.AssertNoError(t, db.Where("symbol = ?", "MSFT").First(&msft).Error)

	testutil.AssertDecimal(t, "price", aapl.CurrentPrice, "180.5")
	testutil.AssertDecimal(t, "change_percent", aapl.ChangePercent, "3.1429")
	if aapl.PriceVersion != 2 || aapl.Volume != 1200 {
		t.Errorf("expected version 2 and volume 1200, got %d and %d", aapl.PriceVersion, aapl.Volume)
	}
	if aapl.PriceUpdatedAt == nil || !aapl.PriceUpdatedAt.Equal(at) {
		t.Errorf("expected price_updated_at %v, got %v", at, aapl.PriceUpdatedAt)
	}
	testutil.AssertDecimal(t, "untouched price", msft.CurrentPrice, "380")
	if msft.PriceVersion != 1 {
		t.Errorf("expected MSFT version unchanged, got %d", msft.PriceVersion)
	}

	prices, err := svc.GetPrices(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertDecimal(t, "prices[AAPL]", prices["AAPL"], "180.5")

	symbols, err := svc.TrackedSymbols(ctx)
	testutil.AssertNoError(t, err)
	if len(symbols) != 2 || symbols[0] != "AAPL" {
		t.Errorf("expected [AAPL MSFT], got %v", symbols)
	}
}
