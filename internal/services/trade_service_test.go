package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"stockfolio/internal/events"
	"stockfolio/internal/models"
	"stockfolio/internal/testutil"
	"stockfolio/internal/uuid"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.TradeEvent
	err    error
}

func (p *recordingPublisher) PublishTrade(_ context.Context, e events.TradeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type tradeFixture struct {
	db        *gorm.DB
	svc       TradeServicer
	publisher *recordingPublisher
	portfolio *models.Portfolio
	stock     *models.Stock
}

// setupTrade creates a $100,000 account, one portfolio and one stock at $175.
func setupTrade(t *testing.T) *tradeFixture {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	testutil.CreateTestAccount(t, db, "100000")
	pub := &recordingPublisher{}
	return &tradeFixture{
		db:        db,
		svc:       NewTradeService(db, pub, 5*time.Second),
		publisher: pub,
		portfolio: testutil.CreateTestPortfolio(t, db),
		stock:     testutil.CreateTestStockWithSymbol(t, db, "AAPL", "175"),
	}
}

func (f *tradeFixture) req(quantity int64) TradeRequest {
	return TradeRequest{Symbol: f.stock.Symbol, PortfolioID: f.portfolio.ID, Quantity: quantity}
}

func (f *tradeFixture) setPrice(t *testing.T, price string) {
	t.Helper()
	err := f.db.Model(&models.Stock{}).Where("id = ?", f.stock.ID).
		Update("current_price", decimal.RequireFromString(price)).Error
	testutil.AssertNoError(t, err)
}

func (f *tradeFixture) balance(t *testing.T) decimal.Decimal {
	t.Helper()
	var account models.AccountBalance
	testutil.AssertNoError(t, f.db.First(&account, models.AccountID).Error)
	return account.Balance
}

func (f *tradeFixture) holding(t *testing.T) (models.Holding, bool) {
	t.Helper()
	var holdings []models.Holding
	testutil.AssertNoError(t, f.db.Where("portfolio_id = ? AND stock_id = ?", f.portfolio.ID, f.stock.ID).Find(&holdings).Error)
	if len(holdings) == 0 {
		return models.Holding{}, false
	}
	return holdings[0], true
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	testutil.AssertNoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestTradeService_Buy(t *testing.T) {
	t.Run("debits_balance_and_opens_holding", func(t *testing.T) {
		f := setupTrade(t)

		res, err := f.svc.Buy(context.Background(), f.req(10))
		testutil.AssertNoError(t, err)

		testutil.AssertDecimal(t, "new_balance", res.NewBalance, "98250")
		testutil.AssertDecimal(t, "stored balance", f.balance(t), "98250")

		h, ok := f.holding(t)
		if !ok {
			t.Fatal("expected holding to exist")
		}
		if h.Quantity != 10 {
			t.Errorf("expected quantity 10, got %d", h.Quantity)
		}
		testutil.AssertDecimal(t, "avg_buy_price", h.AvgBuyPrice, "175")

		txn := res.Transaction
		if txn.Type != models.TradeBuy || txn.Quantity != 10 {
			t.Errorf("expected BUY of 10, got %s of %d", txn.Type, txn.Quantity)
		}
		testutil.AssertDecimal(t, "transaction price", txn.Price, "175")
		if txn.Stock.Symbol != "AAPL" || txn.Portfolio.ID != f.portfolio.ID {
			t.Errorf("expected stock and portfolio attached, got %q %q", txn.Stock.Symbol, txn.Portfolio.ID)
		}
		if time.Since(txn.Timestamp) > time.Minute {
			t.Errorf("expected server timestamp, got %v", txn.Timestamp)
		}
	})

	t.Run("weighted_average_cost", func(t *testing.T) {
		f := setupTrade(t)

		f.setPrice(t, "150")
		_, err := f.svc.Buy(context.Background(), f.req(10))
		testutil.AssertNoError(t, err)
		f.setPrice(t, "200")
		_, err = f.svc.Buy(context.Background(), f.req(10))
		testutil.AssertNoError(t, err)

		h, _ := f.holding(t)
		if h.Quantity != 20 {
			t.Errorf("expected quantity 20, got %d", h.Quantity)
		}
		testutil.AssertDecimal(t, "avg_buy_price", h.AvgBuyPrice, "175")
		testutil.AssertDecimal(t, "balance", f.balance(t), "96500")
	})

	t.Run("average_matches_true_weighted_average", func(t *testing.T) {
		f := setupTrade(t)
		lots := []struct {
			qty   int64
			price string
		}{{3, "101.17"}, {7, "99.5"}, {1, "120.01"}, {4, "87.333"}}

		totalCost := decimal.Zero
		var totalQty int64
		for _, lot := range lots {
			f.setPrice(t, lot.price)
			_, err := f.svc.Buy(context.Background(), f.req(lot.qty))
			testutil.AssertNoError(t, err)
			totalCost = totalCost.Add(decimal.RequireFromString(lot.price).Mul(decimal.NewFromInt(lot.qty)))
			totalQty += lot.qty
		}

		h, _ := f.holding(t)
		want := totalCost.Div(decimal.NewFromInt(totalQty))
		if diff := h.AvgBuyPrice.Sub(want).Abs(); diff.GreaterThan(decimal.New(1, -7)) {
			t.Errorf("expected avg %s, got %s", want, h.AvgBuyPrice)
		}
	})

	t.Run("insufficient_funds_leaves_state_unchanged", func(t *testing.T) {
		f := setupTrade(t)

		_, err := f.svc.Buy(context.Background(), f.req(1000))
		testutil.AssertAppError(t, err, "INSUFFICIENT_FUNDS")

		testutil.AssertDecimal(t, "balance", f.balance(t), "100000")
		if _, ok := f.holding(t); ok {
			t.Error("expected no holding")
		}
		if n := count(t, f.db, &models.Transaction{}); n != 0 {
			t.Errorf("expected no transactions, got %d", n)
		}
		if n := count(t, f.db, &models.NetWorthSnapshot{}); n != 0 {
			t.Errorf("expected no snapshots, got %d", n)
		}
		if len(f.publisher.events) != 0 {
			t.Error("expected no events for a rejected trade")
		}
	})

	t.Run("exact_balance_allowed", func(t *testing.T) {
		f := setupTrade(t)
		f.setPrice(t, "10000")

		res, err := f.svc.Buy(context.Background(), f.req(10))
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "new_balance", res.NewBalance, "0")
	})

	t.Run("client_price_is_not_used", func(t *testing.T) {
		f := setupTrade(t)
		stale := decimal.RequireFromString("1.00")
		req := f.req(10)
		req.ClientPrice = &stale

		res, err := f.svc.Buy(context.Background(), req)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "execution price", res.Transaction.Price, "175")
		testutil.AssertDecimal(t, "new_balance", res.NewBalance, "98250")
	})

	t.Run("symbol_case_insensitive", func(t *testing.T) {
		f := setupTrade(t)
		req := f.req(1)
		req.Symbol = " aapl "

		res, err := f.svc.Buy(context.Background(), req)
		testutil.AssertNoError(t, err)
		if res.Transaction.Stock.Symbol != "AAPL" {
			t.Errorf("expected AAPL, got %s", res.Transaction.Stock.Symbol)
		}
	})

	t.Run("validation", func(t *testing.T) {
		f := setupTrade(t)
		negative := decimal.RequireFromString("-1")

		tests := []struct {
			name string
			req  TradeRequest
			code string
		}{
			{"zero_quantity", f.req(0), "INVALID_INPUT"},
			{"negative_quantity", f.req(-5), "INVALID_INPUT"},
			{"missing_portfolio", TradeRequest{Symbol: "AAPL", Quantity: 1}, "INVALID_INPUT"},
			{"negative_client_price", TradeRequest{Symbol: "AAPL", PortfolioID: f.portfolio.ID, Quantity: 1, ClientPrice: &negative}, "INVALID_INPUT"},
			{"unknown_symbol", TradeRequest{Symbol: "ZZZZ", PortfolioID: f.portfolio.ID, Quantity: 1}, "STOCK_NOT_FOUND"},
			{"unknown_portfolio", TradeRequest{Symbol: "AAPL", PortfolioID: uuid.New(), Quantity: 1}, "PORTFOLIO_NOT_FOUND"},
			{"malformed_portfolio", TradeRequest{Symbol: "AAPL", PortfolioID: "42", Quantity: 1}, "PORTFOLIO_NOT_FOUND"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := f.svc.Buy(context.Background(), tt.req)
				testutil.AssertAppError(t, err, tt.code)
			})
		}
		testutil.AssertDecimal(t, "balance", f.balance(t), "100000")
	})

	t.Run("unpriced_stock", func(t *testing.T) {
		f := setupTrade(t)
		f.setPrice(t, "0")

		_, err := f.svc.Buy(context.Background(), f.req(1))
		testutil.AssertAppError(t, err, "QUOTE_UNAVAILABLE")
	})

	t.Run("deleted_portfolio", func(t *testing.T) {
		f := setupTrade(t)
		testutil.AssertNoError(t, f.db.Delete(f.portfolio).Error)

		_, err := f.svc.Buy(context.Background(), f.req(1))
		testutil.AssertAppError(t, err, "PORTFOLIO_NOT_FOUND")
	})
}

func TestTradeService_Sell(t *testing.T) {
	t.Run("credits_balance_keeps_average", func(t *testing.T) {
		f := setupTrade(t)
		_, err := f.svc.Buy(context.Background(), f.req(10))
		testutil.AssertNoError(t, err)

		res, err := f.svc.Sell(context.Background(), f.req(5))
		testutil.AssertNoError(t, err)

		testutil.AssertDecimal(t, "new_balance", res.NewBalance, "99125")
		h, ok := f.holding(t)
		if !ok || h.Quantity != 5 {
			t.Fatalf("expected 5 shares held, got %+v", h)
		}
		testutil.AssertDecimal(t, "avg_buy_price", h.AvgBuyPrice, "175")
		if res.Transaction.Type != models.TradeSell {
			t.Errorf("expected SELL, got %s", res.Transaction.Type)
		}
	})

	t.Run("sell_at_new_price_keeps_average", func(t *testing.T) {
		f := setupTrade(t)
		_, err := f.svc.Buy(context.Background(), f.req(10))
		testutil.AssertNoError(t, err)
		f.setPrice(t, "200")

		res, err := f.svc.Sell(context.Background(), f.req(4))
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "new_balance", res.NewBalance, "99050")

		h, _ := f.holding(t)
		testutil.AssertDecimal(t, "avg_buy_price", h.AvgBuyPrice, "175")
	})

	t.Run("selling_everything_closes_position", func(t *testing.T) {
		f := setupTrade(t)
		_, err := f.svc.Buy(context.Background(), f.req(10))
		testutil.AssertNoError(t, err)

		_, err = f.svc.Sell(context.Background(), f.req(10))
		testutil.AssertNoError(t, err)

		if _, ok := f.holding(t); ok {
			t.Error("expected holding row to be removed")
		}
		testutil.AssertDecimal(t, "balance", f.balance(t), "100000")

		// reopening starts a fresh average
		f.setPrice(t, "100")
		_, err = f.svc.Buy(context.Background(), f.req(2))
		testutil.AssertNoError(t, err)
		h, _ := f.holding(t)
		testutil.AssertDecimal(t, "avg_buy_price", h.AvgBuyPrice, "100")
	})

	t.Run("no_holding_is_insufficient_shares", func(t *testing.T) {
		f := setupTrade(t)

		_, err := f.svc.Sell(context.Background(), f.req(5))
		testutil.AssertAppError(t, err, "INSUFFICIENT_SHARES")

		testutil.AssertDecimal(t, "balance", f.balance(t), "100000")
		if n := count(t, f.db, &models.Holding{}); n != 0 {
			t.Errorf("expected no holdings, got %d", n)
		}
		if n := count(t, f.db, &models.Transaction{}); n != 0 {
			t.Errorf("expected no transactions, got %d", n)
		}
	})

	t.Run("oversell_leaves_state_unchanged", func(t *testing.T) {
		f := setupTrade(t)
		_, err := f.svc.Buy(context.Background(), f.req(3))
		testutil.AssertNoError(t, err)
		before := f.balance(t)

		_, err = f.svc.Sell(context.Background(), f.req(4))
		testutil.AssertAppError(t, err, "INSUFFICIENT_SHARES")

		if !f.balance(t).Equal(before) {
			t.Errorf("balance changed from %s to %s", before, f.balance(t))
		}
		h, _ := f.holding(t)
		if h.Quantity != 3 {
			t.Errorf("expected 3 shares, got %d", h.Quantity)
		}
		if n := count(t, f.db, &models.Transaction{}); n != 1 {
			t.Errorf("expected only the buy transaction, got %d", n)
		}
	})

	t.Run("holdings_are_per_portfolio", func(t *testing.T) {
		f := setupTrade(t)
		_, err := f.svc.Buy(context.Background(), f.req(5))
		testutil.AssertNoError(t, err)

		other := testutil.CreateTestPortfolio(t, f.db)
		_, err = f.svc.Sell(context.Background(), TradeRequest{Symbol: "AAPL", PortfolioID: other.ID, Quantity: 1})
		testutil.AssertAppError(t, err, "INSUFFICIENT_SHARES")
	})
}

func TestTradeService_Snapshot(t *testing.T) {
	f := setupTrade(t)
	other := testutil.CreateTestStockWithSymbol(t, f.db, "NVDA", "445.67")
	_, err := f.svc.Buy(context.Background(), TradeRequest{Symbol: other.Symbol, PortfolioID: f.portfolio.ID, Quantity: 3})
	testutil.AssertNoError(t, err)

	res, err := f.svc.Buy(context.Background(), f.req(10))
	testutil.AssertNoError(t, err)

	snap := res.Snapshot
	if snap == nil {
		t.Fatal("expected a snapshot")
	}
	if snap.Source != models.SnapshotSourceTrade {
		t.Errorf("expected source trade, got %s", snap.Source)
	}
	if !snap.RecordedAt.Equal(res.Transaction.Timestamp) {
		t.Errorf("expected snapshot stamped with the trade time")
	}
	testutil.AssertDecimal(t, "account_balance", snap.AccountBalance, res.NewBalance.String())
	// 3 * 445.67 + 10 * 175
	testutil.AssertDecimal(t, "portfolio_value", snap.PortfolioValue, "3087.01")
	if !snap.TotalNetWorth.Equal(snap.AccountBalance.Add(snap.PortfolioValue)) {
		t.Errorf("net worth %s != balance %s + value %s", snap.TotalNetWorth, snap.AccountBalance, snap.PortfolioValue)
	}
	testutil.AssertDecimal(t, "total_net_worth", snap.TotalNetWorth, "100000")

	if n := count(t, f.db, &models.NetWorthSnapshot{}); n != 2 {
		t.Errorf("expected one snapshot per trade, got %d", n)
	}
}

func TestTradeService_Events(t *testing.T) {
	t.Run("published_after_commit", func(t *testing.T) {
		f := setupTrade(t)
		res, err := f.svc.Buy(context.Background(), f.req(2))
		testutil.AssertNoError(t, err)

		if len(f.publisher.events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(f.publisher.events))
		}
		e := f.publisher.events[0]
		if e.TransactionID != res.Transaction.ID || e.Side != "BUY" || e.Symbol != "AAPL" {
			t.Errorf("unexpected event: %+v", e)
		}
		testutil.AssertDecimal(t, "event total", e.Total, "350")
	})

	t.Run("publish_failure_does_not_fail_trade", func(t *testing.T) {
		f := setupTrade(t)
		f.publisher.err = errors.New("broker down")

		_, err := f.svc.Buy(context.Background(), f.req(1))
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "balance", f.balance(t), "99825")
	})
}

func TestTradeService_Concurrency(t *testing.T) {
	f := setupTrade(t)

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Buy(context.Background(), f.req(1))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		testutil.AssertNoError(t, err)
	}

	h, _ := f.holding(t)
	if h.Quantity != workers {
		t.Errorf("expected %d shares, got %d", workers, h.Quantity)
	}
	testutil.AssertDecimal(t, "balance", f.balance(t), "98250")
	if n := count(t, f.db, &models.Transaction{}); n != workers {
		t.Errorf("expected %d transactions, got %d", workers, n)
	}
}

func TestTradeService_DeletedPortfolio(t *testing.T) {
	t.Run("trade_after_delete_is_rejected", func(t *testing.T) {
		f := setupTrade(t)
		_, err := NewPortfolioService(f.db).DeletePortfolio(context.Background(), f.portfolio.ID)
		testutil.AssertNoError(t, err)

		_, err = f.svc.Buy(context.Background(), f.req(1))
		testutil.AssertAppError(t, err, "PORTFOLIO_NOT_FOUND")
		testutil.AssertDecimal(t, "balance", f.balance(t), "100000")
		if n := count(t, f.db, &models.Holding{}); n != 0 {
			t.Errorf("expected no holdings, got %d", n)
		}
		if n := count(t, f.db, &models.Transaction{}); n != 0 {
			t.Errorf("expected no transactions, got %d", n)
		}
	})

	t.Run("racing_delete_leaves_no_orphan_holding", func(t *testing.T) {
		f := setupTrade(t)
		portfolios := NewPortfolioService(f.db)

		var wg sync.WaitGroup
		var buyErr, deleteErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, buyErr = f.svc.Buy(context.Background(), f.req(1))
		}()
		go func() {
			defer wg.Done()
			_, deleteErr = portfolios.DeletePortfolio(context.Background(), f.portfolio.ID)
		}()
		wg.Wait()

		testutil.AssertNoError(t, deleteErr)
		if n := count(t, f.db, &models.Holding{}); n != 0 {
			t.Errorf("expected no holdings on a deleted portfolio, got %d", n)
		}
		if buyErr != nil {
			testutil.AssertAppError(t, buyErr, "PORTFOLIO_NOT_FOUND")
			testutil.AssertDecimal(t, "balance", f.balance(t), "100000")
		}
	})
}

func TestTradeService_Timeout(t *testing.T) {
	f := setupTrade(t)
	svc := NewTradeService(f.db, nil, time.Nanosecond)

	_, err := svc.Buy(context.Background(), f.req(1))
	testutil.AssertAppError(t, err, "TRADE_TIMEOUT")
	testutil.AssertDecimal(t, "balance", f.balance(t), "100000")
}

func TestIsLockConflict(t *testing.T) {
	if isLockConflict(errors.New("boom")) {
		t.Error("plain errors are not lock conflicts")
	}
}
