package quotes

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"stockfolio/internal/logger"

	"go.uber.org/zap"
)

// subscriptionBuffer is how many undelivered quotes a subscriber may lag
// behind before further quotes for it are dropped.
const subscriptionBuffer = 64

// Store is the ledger side of the feed: which symbols to track and where
// accepted quotes are persisted. ApplyQuotes returns the subset it stored.
type Store interface {
	TrackedSymbols(ctx context.Context) ([]string, error)
	ApplyQuotes(ctx context.Context, quotes []Quote) ([]Quote, error)
}

// RefreshResult contains the outcome of one polling cycle.
type RefreshResult struct {
	Requested int
	Accepted  int
	Rejected  int
	Published int
	Errors    []FetchError
	Duration  time.Duration
}

// Feed owns the latest quote per symbol. Readers pull with Price; clients
// that want updates pushed call Subscribe.
type Feed struct {
	provider     Provider
	store        Store
	emitInterval time.Duration
	log          *zap.SugaredLogger
	now          func() time.Time

	mu       sync.RWMutex
	latest   map[string]Quote
	lastEmit map[string]time.Time

	subsMu sync.RWMutex
	subs   map[*Subscription]struct{}
}

// NewFeed creates a feed. Pushes for a symbol are throttled to at most one
// per emitInterval; zero disables throttling.
func NewFeed(provider Provider, store Store, emitInterval time.Duration) *Feed {
	return &Feed{
		provider:     provider,
		store:        store,
		emitInterval: emitInterval,
		log:          logger.Named("quotes"),
		now:          time.Now,
		latest:       make(map[string]Quote),
		lastEmit:     make(map[string]time.Time),
		subs:         make(map[*Subscription]struct{}),
	}
}

// Price returns the latest accepted quote for symbol.
func (f *Feed) Price(symbol string) (Quote, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	q, ok := f.latest[strings.ToUpper(symbol)]
	return q, ok
}

// Refresh runs one polling cycle: fetch quotes for every tracked symbol,
// persist them, then push them to subscribers. Only quotes the store
// accepted are published, so a pushed price is always one a trade can
// execute at.
func (f *Feed) Refresh(ctx context.Context) (*RefreshResult, error) {
	start := f.now()
	result := &RefreshResult{}

	symbols, err := f.store.TrackedSymbols(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tracked symbols: %w", err)
	}
	result.Requested = len(symbols)
	if len(symbols) == 0 {
		result.Duration = time.Since(start)
		return result, nil
	}

	fetched, failures := f.provider.FetchQuotes(ctx, symbols)
	result.Errors = failures
	for _, fe := range failures {
		f.log.Warnw("quote fetch failed", "provider", f.provider.Name(), "symbol", fe.Symbol, "error", fe.Err)
	}
	if len(fetched) == 0 {
		result.Duration = time.Since(start)
		return result, nil
	}

	valid := fetched[:0:0]
	for _, q := range fetched {
		if !q.Price.IsPositive() {
			f.log.Warnw("discarding non-positive quote", "provider", f.provider.Name(), "symbol", q.Symbol, "price", q.Price)
			continue
		}
		valid = append(valid, q)
	}

	stored, err := f.store.ApplyQuotes(ctx, valid)
	if err != nil {
		return nil, fmt.Errorf("persist quotes: %w", err)
	}
	result.Rejected = len(fetched) - len(stored)

	for _, q := range stored {
		accepted := f.accept(q)
		result.Accepted++
		if f.publish(accepted) {
			result.Published++
		}
	}

	result.Duration = time.Since(start)
	return result, nil
}

// Publish records q as the latest quote for its symbol and pushes it to
// subscribers unless the symbol was pushed within the emit interval.
func (f *Feed) Publish(q Quote) bool {
	return f.publish(f.accept(q))
}

func (f *Feed) accept(q Quote) Quote {
	q.Symbol = strings.ToUpper(q.Symbol)
	if q.Timestamp.IsZero() {
		q.Timestamp = f.now().UTC()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	q.Version = f.latest[q.Symbol].Version + 1
	f.latest[q.Symbol] = q
	return q
}

func (f *Feed) publish(q Quote) bool {
	now := f.now()

	f.mu.Lock()
	if last, ok := f.lastEmit[q.Symbol]; ok && f.emitInterval > 0 && now.Sub(last) < f.emitInterval {
		f.mu.Unlock()
		return false
	}
	f.lastEmit[q.Symbol] = now
	f.mu.Unlock()

	f.subsMu.RLock()
	defer f.subsMu.RUnlock()
	for sub := range f.subs {
		sub.deliver(q)
	}
	return true
}

// Subscribe registers interest in symbols. The caller must Close the
// subscription when done.
func (f *Feed) Subscribe(symbols []string) *Subscription {
	sub := &Subscription{
		feed: f,
		ch:   make(chan Quote, subscriptionBuffer),
	}
	sub.SetSymbols(symbols)

	f.subsMu.Lock()
	f.subs[sub] = struct{}{}
	f.subsMu.Unlock()
	return sub
}

// Subscribers returns the number of open subscriptions.
func (f *Feed) Subscribers() int {
	f.subsMu.RLock()
	defer f.subsMu.RUnlock()
	return len(f.subs)
}

// Subscription is a stream of quotes for a mutable set of symbols.
type Subscription struct {
	feed *Feed
	ch   chan Quote

	mu      sync.RWMutex
	symbols map[string]struct{}
	closed  bool
	dropped int64
}

// Updates returns the channel quotes are delivered on. It is closed by Close.
func (s *Subscription) Updates() <-chan Quote { return s.ch }

// SetSymbols replaces the subscribed symbol set.
func (s *Subscription) SetSymbols(symbols []string) {
	set := make(map[string]struct{}, len(symbols))
	for _, sym := range symbols {
		if sym = strings.ToUpper(strings.TrimSpace(sym)); sym != "" {
			set[sym] = struct{}{}
		}
	}
	s.mu.Lock()
	s.symbols = set
	s.mu.Unlock()
}

// Symbols returns the subscribed symbols in no particular order.
func (s *Subscription) Symbols() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.symbols))
	for sym := range s.symbols {
		out = append(out, sym)
	}
	return out
}

// Dropped returns how many quotes were discarded because the buffer was full.
func (s *Subscription) Dropped() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dropped
}

// Close unregisters the subscription and closes its channel. It is safe to
// call more than once.
func (s *Subscription) Close() {
	s.feed.subsMu.Lock()
	delete(s.feed.subs, s)
	s.feed.subsMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

func (s *Subscription) deliver(q Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if _, ok := s.symbols[q.Symbol]; !ok {
		return
	}
	select {
	case s.ch <- q:
	default:
		s.dropped++
	}
}
