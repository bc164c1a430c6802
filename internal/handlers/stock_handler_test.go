package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/models"
	"stockfolio/internal/quotes"
	"stockfolio/internal/services"
	"stockfolio/internal/valuation"
)

// --- mock stock service ---

type mockStockService struct {
	listStocksFn          func(ctx context.Context, search string) ([]services.StockSummary, error)
	getStockFn            func(ctx context.Context, symbol string) (*services.StockDetail, error)
	getMarketDataFn       func(ctx context.Context, symbol string) (*services.MarketData, error)
	getPricesFn           func(ctx context.Context) (valuation.Prices, error)
	listWatchlistFn       func(ctx context.Context) ([]services.StockSummary, error)
	addToWatchlistFn      func(ctx context.Context, symbol string) (*models.Stock, error)
	removeFromWatchlistFn func(ctx context.Context, symbol string) (*models.Stock, error)
}

func (m *mockStockService) ListStocks(ctx context.Context, search string) ([]services.StockSummary, error) {
	if m.listStocksFn != nil {
		return m.listStocksFn(ctx, search)
	}
	return []services.StockSummary{}, nil
}

func (m *mockStockService) GetStock(ctx context.Context, symbol string) (*services.StockDetail, error) {
	if m.getStockFn != nil {
		return m.getStockFn(ctx, symbol)
	}
	return &services.StockDetail{}, nil
}

func (m *mockStockService) GetMarketData(ctx context.Context, symbol string) (*services.MarketData, error) {
	if m.getMarketDataFn != nil {
		return m.getMarketDataFn(ctx, symbol)
	}
	return &services.MarketData{}, nil
}

func (m *mockStockService) GetPrices(ctx context.Context) (valuation.Prices, error) {
	if m.getPricesFn != nil {
		return m.getPricesFn(ctx)
	}
	return valuation.Prices{}, nil
}

func (m *mockStockService) ListWatchlist(ctx context.Context) ([]services.StockSummary, error) {
	if m.listWatchlistFn != nil {
		return m.listWatchlistFn(ctx)
	}
	return []services.StockSummary{}, nil
}

func (m *mockStockService) AddToWatchlist(ctx context.Context, symbol string) (*models.Stock, error) {
	if m.addToWatchlistFn != nil {
		return m.addToWatchlistFn(ctx, symbol)
	}
	return &models.Stock{Symbol: symbol}, nil
}

func (m *mockStockService) RemoveFromWatchlist(ctx context.Context, symbol string) (*models.Stock, error) {
	if m.removeFromWatchlistFn != nil {
		return m.removeFromWatchlistFn(ctx, symbol)
	}
	return &models.Stock{Symbol: symbol}, nil
}

func (m *mockStockService) TrackedSymbols(context.Context) ([]string, error) { return nil, nil }

func (m *mockStockService) ApplyQuotes(context.Context, []quotes.Quote) ([]quotes.Quote, error) {
	return nil, nil
}

var _ services.StockServicer = (*mockStockService)(nil)

func setupStockRouter(handler *StockHandler) *gin.Engine {
	r := gin.New()
	r.GET("/stocks", handler.ListStocks)
	r.GET("/stocks/prices", handler.GetPrices)
	r.GET("/stocks/:symbol", handler.GetStock)
	r.GET("/stocks/:symbol/market-data", handler.GetMarketData)
	r.GET("/watchlist", handler.ListWatchlist)
	r.POST("/stocks/:symbol/watchlist", handler.AddToWatchlist)
	r.DELETE("/stocks/:symbol/watchlist", handler.RemoveFromWatchlist)
	return r
}

func TestStockHandler_ListStocks(t *testing.T) {
	t.Run("returns 200 with holdings totals", func(t *testing.T) {
		var gotSearch string
		svc := &mockStockService{
			listStocksFn: func(_ context.Context, search string) ([]services.StockSummary, error) {
				gotSearch = search
				return []services.StockSummary{{
					Stock:           models.Stock{Symbol: "AAPL", Name: "Apple Inc.", CurrentPrice: dec("175.43")},
					TotalSharesHeld: 15,
					TotalValueHeld:  dec("2631.45"),
					TotalCostBasis:  dec("2250"),
				}}, nil
			},
		}
		r := setupStockRouter(NewStockHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodGet, "/stocks?search=app", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotSearch != "app" {
			t.Errorf("expected search %q, got %q", "app", gotSearch)
		}
		item := parseJSONArray(t, rec)[0].(map[string]any)
		if item["symbol"] != "AAPL" || item["current_price"].(float64) != 175.43 {
			t.Errorf("unexpected stock: %v", item)
		}
		if item["total_shares_held"].(float64) != 15 || item["total_cost_basis"].(float64) != 2250 {
			t.Errorf("unexpected totals: %v", item)
		}
	})
}

func TestStockHandler_GetPrices(t *testing.T) {
	t.Run("returns symbol to price map", func(t *testing.T) {
		svc := &mockStockService{
			getPricesFn: func(context.Context) (valuation.Prices, error) {
				return valuation.Prices{"AAPL": dec("175.43"), "MSFT": dec("378.851")}, nil
			},
		}
		r := setupStockRouter(NewStockHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodGet, "/stocks/prices", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["AAPL"].(float64) != 175.43 || result["MSFT"].(float64) != 378.85 {
			t.Errorf("unexpected prices: %v", result)
		}
	})
}

func TestStockHandler_GetStock(t *testing.T) {
	t.Run("returns 200 with detail", func(t *testing.T) {
		svc := &mockStockService{
			getStockFn: func(_ context.Context, symbol string) (*services.StockDetail, error) {
				return &services.StockDetail{
					Stock:       models.Stock{Symbol: symbol},
					TotalShares: 10,
					TotalValue:  dec("1754.3"),
				}, nil
			},
		}
		r := setupStockRouter(NewStockHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodGet, "/stocks/AAPL", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["total_shares"].(float64) != 10 || result["total_value"].(float64) != 1754.3 {
			t.Errorf("unexpected body: %v", result)
		}
	})

	t.Run("returns 404 for unknown symbol", func(t *testing.T) {
		svc := &mockStockService{
			getStockFn: func(context.Context, string) (*services.StockDetail, error) {
				return nil, apperrors.ErrStockNotFound
			},
		}
		r := setupStockRouter(NewStockHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodGet, "/stocks/ZZZZ", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "STOCK_NOT_FOUND")
	})

	t.Run("returns 400 for malformed ticker", func(t *testing.T) {
		called := false
		svc := &mockStockService{
			getStockFn: func(context.Context, string) (*services.StockDetail, error) {
				called = true
				return nil, nil
			},
		}
		r := setupStockRouter(NewStockHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodGet, "/stocks/NOT_A_TICKER", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
		if called {
			t.Error("service must not be called for a malformed ticker")
		}
	})
}

func TestStockHandler_GetMarketData(t *testing.T) {
	t.Run("returns 200 with daily change", func(t *testing.T) {
		svc := &mockStockService{
			getMarketDataFn: func(_ context.Context, symbol string) (*services.MarketData, error) {
				return &services.MarketData{
					Symbol:        symbol,
					Price:         dec("110"),
					PreviousClose: dec("100"),
					Change:        dec("10"),
					ChangePercent: dec("10"),
					Status:        "MARKET OPEN",
					PriceVersion:  3,
				}, nil
			},
		}
		r := setupStockRouter(NewStockHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodGet, "/stocks/AAPL/market-data", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["daily_change"].(float64) != 10 || result["daily_change_percentage"].(float64) != 10 {
			t.Errorf("unexpected change: %v", result)
		}
		if result["status"] != "MARKET OPEN" || result["price_version"].(float64) != 3 {
			t.Errorf("unexpected body: %v", result)
		}
	})

	t.Run("returns 503 when no price is known", func(t *testing.T) {
		svc := &mockStockService{
			getMarketDataFn: func(context.Context, string) (*services.MarketData, error) {
				return nil, apperrors.ErrQuoteUnavailable
			},
		}
		r := setupStockRouter(NewStockHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodGet, "/stocks/AAPL/market-data", "")

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "QUOTE_UNAVAILABLE")
	})
}

func TestStockHandler_Watchlist(t *testing.T) {
	t.Run("lists watched stocks", func(t *testing.T) {
		svc := &mockStockService{
			listWatchlistFn: func(context.Context) ([]services.StockSummary, error) {
				return []services.StockSummary{{Stock: models.Stock{Symbol: "NVDA", Watchlist: true}}}, nil
			},
		}
		r := setupStockRouter(NewStockHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodGet, "/watchlist", "")

		items := parseJSONArray(t, rec)
		if len(items) != 1 || items[0].(map[string]any)["watchlist"] != true {
			t.Errorf("unexpected watchlist: %v", items)
		}
	})

	t.Run("add returns 200 and audits", func(t *testing.T) {
		audit := &mockAuditService{}
		r := setupStockRouter(NewStockHandler(&mockStockService{}, audit))

		rec := doRequest(r, http.MethodPost, "/stocks/nvda/watchlist", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if msg := parseJSON(t, rec)["message"]; msg != "NVDA added to watchlist successfully" {
			t.Errorf("unexpected message: %v", msg)
		}
		if acts := audit.actions(); len(acts) != 1 || acts[0] != services.AuditWatchlistAdd {
			t.Errorf("expected watchlist add audit, got %v", acts)
		}
	})

	t.Run("remove returns 200 and audits", func(t *testing.T) {
		audit := &mockAuditService{}
		r := setupStockRouter(NewStockHandler(&mockStockService{}, audit))

		rec := doRequest(r, http.MethodDelete, "/stocks/NVDA/watchlist", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if msg := parseJSON(t, rec)["message"]; msg != "NVDA removed from watchlist successfully" {
			t.Errorf("unexpected message: %v", msg)
		}
		if acts := audit.actions(); len(acts) != 1 || acts[0] != services.AuditWatchlistRemove {
			t.Errorf("expected watchlist remove audit, got %v", acts)
		}
	})

	t.Run("add returns 404 for unknown symbol", func(t *testing.T) {
		svc := &mockStockService{
			addToWatchlistFn: func(context.Context, string) (*models.Stock, error) {
				return nil, apperrors.ErrStockNotFound
			},
		}
		audit := &mockAuditService{}
		r := setupStockRouter(NewStockHandler(svc, audit))

		rec := doRequest(r, http.MethodPost, "/stocks/ZZZZ/watchlist", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if len(audit.actions()) != 0 {
			t.Error("failed watchlist change must not be audited")
		}
	})
}
