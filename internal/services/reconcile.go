package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"tijori/internal/logger"
	"tijori/internal/models"
	"tijori/internal/resolver"
	"tijori/internal/ticker"
)

// StockView is a stored equity holding merged with its live quote.
type StockView struct {
	Ticker        string          `json:"ticker"`
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Exchange      ticker.Exchange `json:"exchange"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	Invested      decimal.Decimal `json:"invested"`
	CurrentValue  decimal.Decimal `json:"current_value"`
	GainLoss      decimal.Decimal `json:"gain_loss"`
	Error         string          `json:"error,omitempty"`
}

// FundView is a stored fund holding merged with its live NAV.
type FundView struct {
	SchemeCode   string          `json:"scheme_code"`
	Name         string          `json:"name"`
	Units        decimal.Decimal `json:"units"`
	PurchaseNAV  decimal.Decimal `json:"purchase_nav"`
	CurrentNAV   decimal.Decimal `json:"current_nav"`
	Invested     decimal.Decimal `json:"invested"`
	CurrentValue decimal.Decimal `json:"current_value"`
	GainLoss     decimal.Decimal `json:"gain_loss"`
	Error        string          `json:"error,omitempty"`
}

// Reconciler resolves every holding independently and merges the live data
// into the stored record. Keys of the result match the keys of the input.
type Reconciler struct {
	quotes QuoteResolver
	funds  FundResolver
	limit  int
}

// NewReconciler creates a Reconciler that resolves at most limit holdings at
// a time.
func NewReconciler(quotes QuoteResolver, funds FundResolver, limit int) *Reconciler {
	if limit < 1 {
		limit = 1
	}
	return &Reconciler{quotes: quotes, funds: funds, limit: limit}
}

// Stocks reconciles equity holdings keyed by base ticker.
func (r *Reconciler) Stocks(ctx context.Context, holdings map[string]models.StockHolding) map[string]StockView {
	keys := sortedKeys(holdings)
	views := make([]StockView, len(keys))

	var g errgroup.Group
	g.SetLimit(r.limit)
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			stored := holdings[key]
			views[i] = mergeStock(key, stored, r.resolveStock(ctx, stockLookup(key, stored)))
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]StockView, len(keys))
	for i, key := range keys {
		out[key] = views[i]
	}
	return out
}

// Funds reconciles fund holdings keyed by scheme code.
func (r *Reconciler) Funds(ctx context.Context, holdings map[string]models.FundHolding) map[string]FundView {
	keys := sortedKeys(holdings)
	views := make([]FundView, len(keys))

	var g errgroup.Group
	g.SetLimit(r.limit)
	for i, code := range keys {
		i, code := i, code
		g.Go(func() error {
			views[i] = mergeFund(code, holdings[code], r.resolveFund(ctx, code))
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]FundView, len(keys))
	for i, code := range keys {
		out[code] = views[i]
	}
	return out
}

func (r *Reconciler) resolveStock(ctx context.Context, lookup string) (q resolver.QuoteResult) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Get().Errorw("quote resolution panicked", "ticker", lookup, "panic", rec)
			t, _ := ticker.Normalize(lookup)
			q = resolver.Unresolved(t.Base)
		}
	}()
	return r.quotes.Resolve(ctx, lookup)
}

func (r *Reconciler) resolveFund(ctx context.Context, code string) (f resolver.FundResult) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Get().Errorw("fund resolution panicked", "scheme_code", code, "panic", rec)
			f = resolver.FundResult{
				SchemeCode: code,
				Name:       resolver.DefaultFundName(code),
				CurrentNAV: decimal.Zero,
				Error:      fmt.Sprintf("fund lookup failed: %v", rec),
			}
		}
	}()
	return r.funds.Resolve(ctx, code)
}

// stockLookup prefers the stored symbol over the map key.
func stockLookup(key string, stored models.StockHolding) string {
	if stored.Symbol != "" {
		return stored.Symbol
	}
	return key
}

// mergeStock applies the per-field rules:
//
//	quantity, purchase price   always stored
//	current price              always live (0 when unresolved)
//	name, symbol               live when resolved, else stored, else live sentinel
//	exchange                   live when resolved, else stored, else Unknown
func mergeStock(key string, stored models.StockHolding, live resolver.QuoteResult) StockView {
	v := StockView{
		Ticker:        key,
		Quantity:      stored.Quantity,
		PurchasePrice: stored.PurchasePrice,
		CurrentPrice:  live.CurrentPrice,
	}

	if live.Resolved() {
		v.Name = firstNonEmpty(live.Name, stored.Name, key)
		v.Symbol = firstNonEmpty(live.Symbol, stored.Symbol, key)
		v.Exchange = live.Exchange
	} else {
		v.CurrentPrice = decimal.Zero
		v.Name = firstNonEmpty(stored.Name, live.Name, key)
		v.Symbol = firstNonEmpty(stored.Symbol, live.Symbol, key)
		v.Exchange = ticker.Exchange(firstNonEmpty(stored.Exchange, string(ticker.ExchangeUnknown)))
		v.Error = fmt.Sprintf("Could not find current price for %s", stockLookup(key, stored))
	}

	v.Invested = v.Quantity.Mul(v.PurchasePrice)
	v.CurrentValue = v.Quantity.Mul(v.CurrentPrice)
	v.GainLoss = v.CurrentValue.Sub(v.Invested)
	return v
}

// mergeFund keeps units and purchase NAV from the store. Name and NAV come
// from the provider unless the call failed, in which case the stored name is
// shown with a zero NAV and the failure reason.
func mergeFund(code string, stored models.FundHolding, live resolver.FundResult) FundView {
	v := FundView{
		SchemeCode:  code,
		Units:       stored.Units,
		PurchaseNAV: stored.PurchaseNAV,
	}

	if live.Failed() {
		v.Name = firstNonEmpty(stored.Name, live.Name, resolver.DefaultFundName(code))
		v.CurrentNAV = decimal.Zero
		v.Error = live.Error
	} else {
		v.Name = firstNonEmpty(live.Name, stored.Name, resolver.DefaultFundName(code))
		v.CurrentNAV = live.CurrentNAV
	}

	v.Invested = v.Units.Mul(v.PurchaseNAV)
	v.CurrentValue = v.Units.Mul(v.CurrentNAV)
	v.GainLoss = v.CurrentValue.Sub(v.Invested)
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
