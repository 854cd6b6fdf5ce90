// Package resolver turns user identifiers into priced, named records by
// walking an ordered list of upstream strategies. Resolvers never return
// errors: every upstream failure degrades the result instead.
package resolver

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tijori/internal/provider"
	"tijori/internal/ticker"
)

// TimeSeriesSource is the primary market-data provider.
type TimeSeriesSource interface {
	HistoricalClose(ctx context.Context, symbol string) (decimal.Decimal, error)
	LiveQuote(ctx context.Context, symbol string) (*provider.LiveQuote, error)
}

// DirectQuoteSource is the low-level chart endpoint used as a last resort.
type DirectQuoteSource interface {
	ChartMeta(ctx context.Context, symbol string) (*provider.ChartMeta, error)
}

// QuoteResult is the resolved view of one ticker. A zero CurrentPrice means
// the ticker could not be resolved; in that case Exchange is Unknown and both
// Name and Symbol hold the base symbol.
type QuoteResult struct {
	Name         string          `json:"name"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	Exchange     ticker.Exchange `json:"exchange"`
	Symbol       string          `json:"symbol"`
}

// Resolved reports whether the result carries a real price.
func (q QuoteResult) Resolved() bool {
	return q.CurrentPrice.IsPositive()
}

// Unresolved returns the sentinel result for base.
func Unresolved(base string) QuoteResult {
	return QuoteResult{
		Name:         base,
		CurrentPrice: decimal.Zero,
		Exchange:     ticker.ExchangeUnknown,
		Symbol:       base,
	}
}

// Candidate is what a single strategy found.
type Candidate struct {
	Price decimal.Decimal
	Name  string
}

// Strategy is one tier of the fallback chain.
type Strategy struct {
	Name     string
	Exchange ticker.Exchange
	// Symbol builds the upstream symbol from the base symbol.
	Symbol func(base string) string
	Fetch  func(ctx context.Context, symbol string) (Candidate, error)
}

// QuoteResolver resolves equity tickers.
type QuoteResolver struct {
	strategies []Strategy
	log        *zap.SugaredLogger
}

// NewQuoteResolver builds the default chain: NSE history, NSE quote, BSE
// history, BSE quote, then the direct chart endpoint for the NSE symbol.
func NewQuoteResolver(ts TimeSeriesSource, direct DirectQuoteSource, log *zap.SugaredLogger) *QuoteResolver {
	return NewQuoteResolverWithStrategies(log, DefaultStrategies(ts, direct)...)
}

// NewQuoteResolverWithStrategies builds a resolver over a custom chain.
func NewQuoteResolverWithStrategies(log *zap.SugaredLogger, strategies ...Strategy) *QuoteResolver {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &QuoteResolver{strategies: strategies, log: log}
}

// DefaultStrategies returns the standard tier list.
func DefaultStrategies(ts TimeSeriesSource, direct DirectQuoteSource) []Strategy {
	nse := func(base string) string { return ticker.Qualify(base, ticker.ExchangeNSE) }
	bse := func(base string) string { return ticker.Qualify(base, ticker.ExchangeBSE) }

	return []Strategy{
		{Name: "nse-history", Exchange: ticker.ExchangeNSE, Symbol: nse, Fetch: historyFetcher(ts)},
		{Name: "nse-quote", Exchange: ticker.ExchangeNSE, Symbol: nse, Fetch: quoteFetcher(ts)},
		{Name: "bse-history", Exchange: ticker.ExchangeBSE, Symbol: bse, Fetch: historyFetcher(ts)},
		{Name: "bse-quote", Exchange: ticker.ExchangeBSE, Symbol: bse, Fetch: quoteFetcher(ts)},
		{Name: "direct-chart", Exchange: ticker.ExchangeNSE, Symbol: nse, Fetch: directFetcher(direct)},
	}
}

// Resolve returns the first strictly positive price the chain produces for an
// exchange-qualified symbol, or the sentinel result when every tier fails.
func (r *QuoteResolver) Resolve(ctx context.Context, raw string) QuoteResult {
	t, err := ticker.Normalize(raw)
	if err != nil {
		return Unresolved(t.Base)
	}

	for _, s := range r.strategies {
		if ctx.Err() != nil {
			break
		}
		symbol := s.Symbol(t.Base)
		c, err := r.attempt(ctx, s, symbol)
		if err != nil {
			r.log.Debugw("quote tier failed", "tier", s.Name, "symbol", symbol, "error", err)
			continue
		}
		if !c.Price.IsPositive() {
			r.log.Debugw("quote tier returned no price", "tier", s.Name, "symbol", symbol, "price", c.Price)
			continue
		}
		if !ticker.IsQualified(symbol) {
			r.log.Warnw("quote tier priced an unqualified symbol", "tier", s.Name, "symbol", symbol)
			continue
		}

		name := c.Name
		if name == "" {
			name = symbol
		}
		return QuoteResult{
			Name:         name,
			CurrentPrice: c.Price,
			Exchange:     s.Exchange,
			Symbol:       symbol,
		}
	}

	r.log.Warnw("no price found", "ticker", t.Base)
	return Unresolved(t.Base)
}

func (r *QuoteResolver) attempt(ctx context.Context, s Strategy, symbol string) (c Candidate, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic in %s: %v", s.Name, rec)
		}
	}()
	return s.Fetch(ctx, symbol)
}

// historyFetcher prices from the latest daily close and names from the live
// quote. A failed name lookup leaves the name empty.
func historyFetcher(ts TimeSeriesSource) func(context.Context, string) (Candidate, error) {
	return func(ctx context.Context, symbol string) (Candidate, error) {
		price, err := ts.HistoricalClose(ctx, symbol)
		if err != nil {
			return Candidate{}, err
		}
		c := Candidate{Price: price}
		if !price.IsPositive() {
			return c, nil
		}
		if q, err := ts.LiveQuote(ctx, symbol); err == nil && q != nil {
			c.Name = quoteName(q, symbol)
		}
		return c, nil
	}
}

func quoteFetcher(ts TimeSeriesSource) func(context.Context, string) (Candidate, error) {
	return func(ctx context.Context, symbol string) (Candidate, error) {
		q, err := ts.LiveQuote(ctx, symbol)
		if err != nil {
			return Candidate{}, err
		}
		if q == nil {
			return Candidate{}, provider.ErrNoData
		}
		price := q.RegularMarketPrice
		if !price.IsPositive() {
			price = q.PreviousClose
		}
		return Candidate{Price: price, Name: quoteName(q, symbol)}, nil
	}
}

func directFetcher(direct DirectQuoteSource) func(context.Context, string) (Candidate, error) {
	return func(ctx context.Context, symbol string) (Candidate, error) {
		meta, err := direct.ChartMeta(ctx, symbol)
		if err != nil {
			return Candidate{}, err
		}
		if meta == nil || meta.RegularMarketPrice == nil {
			return Candidate{}, provider.ErrNoData
		}
		name := meta.ShortName
		if name == "" {
			t, _ := ticker.Normalize(symbol)
			name = t.Base
		}
		return Candidate{Price: *meta.RegularMarketPrice, Name: name}, nil
	}
}

func quoteName(q *provider.LiveQuote, symbol string) string {
	switch {
	case q.ShortName != "":
		return q.ShortName
	case q.LongName != "":
		return q.LongName
	default:
		return symbol
	}
}
