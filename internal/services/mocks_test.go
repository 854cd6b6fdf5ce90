package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"tijori/internal/models"
	"tijori/internal/resolver"
	"tijori/internal/ticker"
)

type mockQuoteResolver struct {
	mu        sync.Mutex
	resolveFn func(ctx context.Context, raw string) resolver.QuoteResult
	lookups   []string
}

func (m *mockQuoteResolver) Resolve(ctx context.Context, raw string) resolver.QuoteResult {
	m.mu.Lock()
	m.lookups = append(m.lookups, raw)
	m.mu.Unlock()
	return m.resolveFn(ctx, raw)
}

// quotesFrom resolves known base symbols to NSE quotes and everything else
// to the sentinel.
func quotesFrom(prices map[string]string) *mockQuoteResolver {
	return &mockQuoteResolver{resolveFn: func(_ context.Context, raw string) resolver.QuoteResult {
		t, _ := ticker.Normalize(raw)
		p, ok := prices[t.Base]
		if !ok {
			return resolver.Unresolved(t.Base)
		}
		return resolver.QuoteResult{
			Name:         t.Base + " Ltd",
			CurrentPrice: decimal.RequireFromString(p),
			Exchange:     ticker.ExchangeNSE,
			Symbol:       t.Base + ".NS",
		}
	}}
}

type mockFundResolver struct {
	resolveFn func(ctx context.Context, code string) resolver.FundResult
}

func (m *mockFundResolver) Resolve(ctx context.Context, code string) resolver.FundResult {
	return m.resolveFn(ctx, code)
}

func fundsFrom(navs map[string]string) *mockFundResolver {
	return &mockFundResolver{resolveFn: func(_ context.Context, code string) resolver.FundResult {
		nav, ok := navs[code]
		if !ok {
			return resolver.FundResult{
				SchemeCode: code,
				Name:       resolver.DefaultFundName(code),
				CurrentNAV: decimal.Zero,
				Error:      "fund provider returned status 404",
			}
		}
		return resolver.FundResult{SchemeCode: code, Name: "Scheme " + code, CurrentNAV: decimal.RequireFromString(nav)}
	}}
}

type mockStore struct {
	stocksFn   func(ctx context.Context, userID string) (map[string]models.StockHolding, error)
	putStockFn func(ctx context.Context, userID string, h models.StockHolding) error
	fundsFn    func(ctx context.Context, userID string) (map[string]models.FundHolding, error)
	putFundFn  func(ctx context.Context, userID string, h models.FundHolding) error
}

func (m *mockStore) Stocks(ctx context.Context, userID string) (map[string]models.StockHolding, error) {
	return m.stocksFn(ctx, userID)
}

func (m *mockStore) PutStock(ctx context.Context, userID string, h models.StockHolding) error {
	return m.putStockFn(ctx, userID, h)
}

func (m *mockStore) Funds(ctx context.Context, userID string) (map[string]models.FundHolding, error) {
	return m.fundsFn(ctx, userID)
}

func (m *mockStore) PutFund(ctx context.Context, userID string, h models.FundHolding) error {
	return m.putFundFn(ctx, userID, h)
}

var errStoreDown = errors.New("store is down")

func failingStore() *mockStore {
	return &mockStore{
		stocksFn:   func(context.Context, string) (map[string]models.StockHolding, error) { return nil, errStoreDown },
		putStockFn: func(context.Context, string, models.StockHolding) error { return errStoreDown },
		fundsFn:    func(context.Context, string) (map[string]models.FundHolding, error) { return nil, errStoreDown },
		putFundFn:  func(context.Context, string, models.FundHolding) error { return errStoreDown },
	}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
