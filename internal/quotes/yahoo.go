package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const (
	yahooUA          = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"
	yahooConcurrency = 4
)

// yahooChartResponse is the v8 chart endpoint response, reduced to the
// fields a quote needs.
type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta yahooChartMeta `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type yahooChartMeta struct {
	Symbol               string  `json:"symbol"`
	RegularMarketPrice   float64 `json:"regularMarketPrice"`
	ChartPreviousClose   float64 `json:"chartPreviousClose"`
	PreviousClose        float64 `json:"previousClose"`
	RegularMarketVolume  int64   `json:"regularMarketVolume"`
	RegularMarketTime    int64   `json:"regularMarketTime"`
	CurrentTradingPeriod struct {
		Regular struct {
			Start int64 `json:"start"`
			End   int64 `json:"end"`
		} `json:"regular"`
	} `json:"currentTradingPeriod"`
}

// YahooProvider fetches quotes from the Yahoo Finance v8 chart API, one
// request per symbol.
type YahooProvider struct {
	client *resty.Client
	now    func() time.Time
}

// NewYahooProvider creates a provider against baseURL, normally
// https://query1.finance.yahoo.com/v8/finance/chart.
func NewYahooProvider(baseURL string, timeout time.Duration) *YahooProvider {
	client := resty.New().
		SetTimeout(timeout).
		SetBaseURL(baseURL).
		SetHeader("User-Agent", yahooUA).
		SetHeader("Accept", "application/json")
	return &YahooProvider{client: client, now: time.Now}
}

// Name returns the provider's display name.
func (p *YahooProvider) Name() string { return "Yahoo Finance" }

// FetchQuotes fetches the symbols concurrently, a few at a time.
func (p *YahooProvider) FetchQuotes(ctx context.Context, symbols []string) ([]Quote, []FetchError) {
	if len(symbols) == 0 {
		return nil, nil
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		results  []Quote
		failures []FetchError
	)
	sem := make(chan struct{}, yahooConcurrency)

	for _, symbol := range symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			q, err := p.fetchOne(ctx, symbol)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, FetchError{Symbol: symbol, Err: err})
				return
			}
			results = append(results, q)
		}(symbol)
	}
	wg.Wait()

	return results, failures
}

func (p *YahooProvider) fetchOne(ctx context.Context, symbol string) (Quote, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"interval": "1d",
			"range":    "1d",
		}).
		Get("/" + url.PathEscape(symbol))
	if err != nil {
		return Quote{}, fmt.Errorf("http request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusNotFound {
		return Quote{}, fmt.Errorf("unexpected status %d", resp.StatusCode())
	}

	var chart yahooChartResponse
	if err := json.Unmarshal(resp.Body(), &chart); err != nil {
		return Quote{}, fmt.Errorf("decoding response: %w", err)
	}
	if chart.Chart.Error != nil {
		return Quote{}, fmt.Errorf("%s: %s", chart.Chart.Error.Code, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return Quote{}, fmt.Errorf("symbol %s not found in response", symbol)
	}

	meta := chart.Chart.Result[0].Meta
	if meta.RegularMarketPrice <= 0 {
		return Quote{}, fmt.Errorf("zero price for %s", symbol)
	}

	prevRaw := meta.ChartPreviousClose
	if prevRaw == 0 {
		prevRaw = meta.PreviousClose
	}
	price := decimal.NewFromFloat(meta.RegularMarketPrice)
	prev := decimal.NewFromFloat(prevRaw)

	now := p.now().UTC()
	ts := now
	if meta.RegularMarketTime > 0 {
		ts = time.Unix(meta.RegularMarketTime, 0).UTC()
	}
	period := meta.CurrentTradingPeriod.Regular
	open := period.Start > 0 && now.Unix() >= period.Start && now.Unix() < period.End

	return Quote{
		Symbol:        symbol,
		Price:         price,
		PreviousClose: prev,
		ChangePercent: changePercent(price, prev),
		Volume:        meta.RegularMarketVolume,
		MarketOpen:    open,
		Timestamp:     ts,
	}, nil
}
