package resolver

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap/zaptest"

	"tijori/internal/provider"
	"tijori/internal/ticker"
)

type fakeTimeSeries struct {
	mu       sync.Mutex
	closes   map[string]decimal.Decimal
	quotes   map[string]*provider.LiveQuote
	panicOn  string
	calls    []string
	closeErr error
}

func (f *fakeTimeSeries) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeTimeSeries) HistoricalClose(_ context.Context, symbol string) (decimal.Decimal, error) {
	f.record("history:" + symbol)
	if symbol == f.panicOn {
		panic("library blew up")
	}
	if f.closeErr != nil {
		return decimal.Zero, f.closeErr
	}
	p, ok := f.closes[symbol]
	if !ok {
		return decimal.Zero, provider.ErrNoData
	}
	return p, nil
}

func (f *fakeTimeSeries) LiveQuote(_ context.Context, symbol string) (*provider.LiveQuote, error) {
	f.record("quote:" + symbol)
	q, ok := f.quotes[symbol]
	if !ok {
		return nil, provider.ErrNoData
	}
	return q, nil
}

type fakeDirect struct {
	metas map[string]*provider.ChartMeta
	err   error
	calls int
}

func (f *fakeDirect) ChartMeta(_ context.Context, symbol string) (*provider.ChartMeta, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	m, ok := f.metas[symbol]
	if !ok {
		return nil, provider.ErrNoData
	}
	return m, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestQuoteResolver_Resolve(t *testing.T) {
	t.Run("nse history wins without touching later tiers", func(t *testing.T) {
		ts := &fakeTimeSeries{
			closes: map[string]decimal.Decimal{"INFY.NS": dec("100")},
			quotes: map[string]*provider.LiveQuote{"INFY.NS": {ShortName: "Infosys"}},
		}
		direct := &fakeDirect{}
		r := NewQuoteResolver(ts, direct, zaptest.NewLogger(t).Sugar())

		got := r.Resolve(context.Background(), "infy")

		want := QuoteResult{Name: "Infosys", CurrentPrice: dec("100"), Exchange: ticker.ExchangeNSE, Symbol: "INFY.NS"}
		assertQuote(t, want, got)
		for _, c := range ts.calls {
			if c == "history:INFY.BO" || c == "quote:INFY.BO" {
				t.Errorf("unexpected BSE call %s", c)
			}
		}
		if direct.calls != 0 {
			t.Errorf("expected no direct calls, got %d", direct.calls)
		}
	})

	t.Run("suffixed input is normalized first", func(t *testing.T) {
		ts := &fakeTimeSeries{closes: map[string]decimal.Decimal{"TCS.NS": dec("3500")}}
		r := NewQuoteResolver(ts, &fakeDirect{}, zaptest.NewLogger(t).Sugar())

		got := r.Resolve(context.Background(), " tcs.bo ")
		if got.Symbol != "TCS.NS" {
			t.Errorf("expected TCS.NS, got %s", got.Symbol)
		}
	})

	t.Run("name falls back to symbol when name lookup fails", func(t *testing.T) {
		ts := &fakeTimeSeries{closes: map[string]decimal.Decimal{"INFY.NS": dec("100")}}
		r := NewQuoteResolver(ts, &fakeDirect{}, zaptest.NewLogger(t).Sugar())

		got := r.Resolve(context.Background(), "INFY")
		if got.Name != "INFY.NS" {
			t.Errorf("expected name INFY.NS, got %s", got.Name)
		}
		if !got.CurrentPrice.Equal(dec("100")) {
			t.Errorf("expected price 100, got %s", got.CurrentPrice)
		}
	})

	t.Run("long name used when short name is empty", func(t *testing.T) {
		ts := &fakeTimeSeries{
			closes: map[string]decimal.Decimal{"INFY.NS": dec("100")},
			quotes: map[string]*provider.LiveQuote{"INFY.NS": {LongName: "Infosys Limited"}},
		}
		r := NewQuoteResolver(ts, &fakeDirect{}, zaptest.NewLogger(t).Sugar())

		if got := r.Resolve(context.Background(), "INFY"); got.Name != "Infosys Limited" {
			t.Errorf("expected long name, got %s", got.Name)
		}
	})

	t.Run("live quote falls back to previous close", func(t *testing.T) {
		ts := &fakeTimeSeries{
			quotes: map[string]*provider.LiveQuote{"HDFC.NS": {
				RegularMarketPrice: decimal.Zero,
				PreviousClose:      dec("1650.4"),
				ShortName:          "HDFC",
			}},
		}
		r := NewQuoteResolver(ts, &fakeDirect{}, zaptest.NewLogger(t).Sugar())

		got := r.Resolve(context.Background(), "HDFC")
		assertQuote(t, QuoteResult{Name: "HDFC", CurrentPrice: dec("1650.4"), Exchange: ticker.ExchangeNSE, Symbol: "HDFC.NS"}, got)
	})

	t.Run("zero history price falls through to the quote tier", func(t *testing.T) {
		ts := &fakeTimeSeries{
			closes: map[string]decimal.Decimal{"X.NS": decimal.Zero},
			quotes: map[string]*provider.LiveQuote{"X.NS": {RegularMarketPrice: dec("12")}},
		}
		r := NewQuoteResolver(ts, &fakeDirect{}, zaptest.NewLogger(t).Sugar())

		if got := r.Resolve(context.Background(), "X"); !got.CurrentPrice.Equal(dec("12")) {
			t.Errorf("expected 12, got %s", got.CurrentPrice)
		}
	})

	t.Run("bse used when nse has nothing", func(t *testing.T) {
		ts := &fakeTimeSeries{
			closes: map[string]decimal.Decimal{"SBIN.BO": dec("780.25")},
			quotes: map[string]*provider.LiveQuote{"SBIN.BO": {ShortName: "State Bank of India"}},
		}
		direct := &fakeDirect{}
		r := NewQuoteResolver(ts, direct, zaptest.NewLogger(t).Sugar())

		got := r.Resolve(context.Background(), "SBIN")
		assertQuote(t, QuoteResult{Name: "State Bank of India", CurrentPrice: dec("780.25"), Exchange: ticker.ExchangeBSE, Symbol: "SBIN.BO"}, got)
		if direct.calls != 0 {
			t.Errorf("expected no direct calls, got %d", direct.calls)
		}
	})

	t.Run("direct chart is the last resort", func(t *testing.T) {
		ts := &fakeTimeSeries{closeErr: errors.New("rate limited")}
		direct := &fakeDirect{metas: map[string]*provider.ChartMeta{
			"WIPRO.NS": {RegularMarketPrice: decPtr("455.6")},
		}}
		r := NewQuoteResolver(ts, direct, zaptest.NewLogger(t).Sugar())

		got := r.Resolve(context.Background(), "WIPRO")
		assertQuote(t, QuoteResult{Name: "WIPRO", CurrentPrice: dec("455.6"), Exchange: ticker.ExchangeNSE, Symbol: "WIPRO.NS"}, got)
	})

	t.Run("direct chart short name", func(t *testing.T) {
		direct := &fakeDirect{metas: map[string]*provider.ChartMeta{
			"WIPRO.NS": {RegularMarketPrice: decPtr("455.6"), ShortName: "WIPRO LTD"},
		}}
		r := NewQuoteResolver(&fakeTimeSeries{}, direct, zaptest.NewLogger(t).Sugar())

		if got := r.Resolve(context.Background(), "WIPRO"); got.Name != "WIPRO LTD" {
			t.Errorf("expected WIPRO LTD, got %s", got.Name)
		}
	})

	t.Run("all tiers fail gives the sentinel", func(t *testing.T) {
		direct := &fakeDirect{err: errors.New("connection refused")}
		r := NewQuoteResolver(&fakeTimeSeries{}, direct, zaptest.NewLogger(t).Sugar())

		got := r.Resolve(context.Background(), "nosuch.ns")
		assertQuote(t, Unresolved("NOSUCH"), got)
		if got.Resolved() {
			t.Error("sentinel must not report resolved")
		}
	})

	t.Run("panicking tier is isolated", func(t *testing.T) {
		ts := &fakeTimeSeries{
			panicOn: "RELIANCE.NS",
			quotes:  map[string]*provider.LiveQuote{"RELIANCE.NS": {RegularMarketPrice: dec("2900")}},
		}
		r := NewQuoteResolver(ts, &fakeDirect{}, zaptest.NewLogger(t).Sugar())

		got := r.Resolve(context.Background(), "RELIANCE")
		if !got.CurrentPrice.Equal(dec("2900")) {
			t.Errorf("expected 2900 from the quote tier, got %s", got.CurrentPrice)
		}
	})

	t.Run("empty input never calls upstream", func(t *testing.T) {
		ts := &fakeTimeSeries{}
		direct := &fakeDirect{}
		r := NewQuoteResolver(ts, direct, zaptest.NewLogger(t).Sugar())

		got := r.Resolve(context.Background(), "   ")
		if got.Resolved() || got.Exchange != ticker.ExchangeUnknown {
			t.Errorf("expected sentinel, got %+v", got)
		}
		if len(ts.calls) != 0 || direct.calls != 0 {
			t.Errorf("expected no upstream calls, got %v and %d", ts.calls, direct.calls)
		}
	})

	t.Run("cancelled context stops the chain", func(t *testing.T) {
		ts := &fakeTimeSeries{closes: map[string]decimal.Decimal{"INFY.NS": dec("100")}}
		r := NewQuoteResolver(ts, &fakeDirect{}, zaptest.NewLogger(t).Sugar())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if got := r.Resolve(ctx, "INFY"); got.Resolved() {
			t.Errorf("expected sentinel after cancellation, got %+v", got)
		}
	})
}

func TestQuoteResolver_CustomStrategies(t *testing.T) {
	var order []string
	mk := func(name string, price string) Strategy {
		return Strategy{
			Name:     name,
			Exchange: ticker.ExchangeBSE,
			Symbol:   func(base string) string { return base + ".BO" },
			Fetch: func(context.Context, string) (Candidate, error) {
				order = append(order, name)
				return Candidate{Price: dec(price)}, nil
			},
		}
	}
	r := NewQuoteResolverWithStrategies(nil, mk("first", "-1"), mk("second", "5"), mk("third", "9"))

	got := r.Resolve(context.Background(), "abc")
	if !got.CurrentPrice.Equal(dec("5")) {
		t.Errorf("expected 5, got %s", got.CurrentPrice)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("unexpected call order %v", order)
	}
}

func TestQuoteResolver_SkipsUnqualifiedSymbols(t *testing.T) {
	bare := Strategy{
		Name:     "bare",
		Exchange: ticker.ExchangeNSE,
		Symbol:   func(base string) string { return base },
		Fetch: func(context.Context, string) (Candidate, error) {
			return Candidate{Price: dec("42")}, nil
		},
	}
	nse := Strategy{
		Name:     "nse",
		Exchange: ticker.ExchangeNSE,
		Symbol:   func(base string) string { return ticker.Qualify(base, ticker.ExchangeNSE) },
		Fetch: func(context.Context, string) (Candidate, error) {
			return Candidate{Price: dec("7"), Name: "Acme"}, nil
		},
	}

	got := NewQuoteResolverWithStrategies(zaptest.NewLogger(t).Sugar(), bare, nse).Resolve(context.Background(), "acme")
	assertQuote(t, QuoteResult{Name: "Acme", CurrentPrice: dec("7"), Exchange: ticker.ExchangeNSE, Symbol: "ACME.NS"}, got)

	got = NewQuoteResolverWithStrategies(zaptest.NewLogger(t).Sugar(), bare).Resolve(context.Background(), "acme")
	assertQuote(t, Unresolved("ACME"), got)
}

func assertQuote(t *testing.T, want, got QuoteResult) {
	t.Helper()
	if got.Name != want.Name {
		t.Errorf("name: expected %q, got %q", want.Name, got.Name)
	}
	if !got.CurrentPrice.Equal(want.CurrentPrice) {
		t.Errorf("price: expected %s, got %s", want.CurrentPrice, got.CurrentPrice)
	}
	if got.Exchange != want.Exchange {
		t.Errorf("exchange: expected %s, got %s", want.Exchange, got.Exchange)
	}
	if got.Symbol != want.Symbol {
		t.Errorf("symbol: expected %q, got %q", want.Symbol, got.Symbol)
	}
}
