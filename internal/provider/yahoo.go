package provider

import (
	"context"
	"fmt"
	"net/http"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"
	"github.com/shopspring/decimal"
)

// historyLookback spans a full week so the window always holds the most
// recent trading session across weekends and exchange holidays.
const historyLookback = 7 * 24 * time.Hour

// YahooTimeSeries is the time-series adapter backed by finance-go. It serves
// both the historical daily close and the live quote for a qualified symbol.
type YahooTimeSeries struct {
	lookback time.Duration
	now      func() time.Time
	bars     func(ctx context.Context, symbol string, start, end time.Time) ([]*finance.ChartBar, error)
	equity   func(symbol string) (*finance.Equity, error)
}

// NewYahooTimeSeries creates the adapter. A non-nil httpClient replaces the
// library's client so the configured upstream timeout applies.
func NewYahooTimeSeries(httpClient *http.Client) *YahooTimeSeries {
	if httpClient != nil {
		finance.SetHTTPClient(httpClient)
	}
	return &YahooTimeSeries{
		lookback: historyLookback,
		now:      time.Now,
		bars:     fetchDailyBars,
		equity:   equity.Get,
	}
}

func fetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]*finance.ChartBar, error) {
	iter := chart.Get(&chart.Params{
		Params:   finance.Params{Context: &ctx},
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	})

	var bars []*finance.ChartBar
	for iter.Next() {
		bars = append(bars, iter.Bar())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return bars, nil
}

// HistoricalClose returns the close of the most recent daily bar within the
// lookback window, i.e. the last trading day's close.
func (y *YahooTimeSeries) HistoricalClose(ctx context.Context, symbol string) (decimal.Decimal, error) {
	end := y.now()
	bars, err := y.bars(ctx, symbol, end.Add(-y.lookback), end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("history for %s: %w", symbol, err)
	}
	if len(bars) == 0 || bars[len(bars)-1] == nil {
		return decimal.Zero, fmt.Errorf("history for %s: %w", symbol, ErrNoData)
	}
	return bars[len(bars)-1].Close, nil
}

// LiveQuote returns the live quote fields for symbol.
func (y *YahooTimeSeries) LiveQuote(ctx context.Context, symbol string) (*LiveQuote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	eq, err := y.equity(symbol)
	if err != nil {
		return nil, fmt.Errorf("quote for %s: %w", symbol, err)
	}
	if eq == nil {
		return nil, fmt.Errorf("quote for %s: %w", symbol, ErrNoData)
	}
	return &LiveQuote{
		Symbol:             eq.Symbol,
		RegularMarketPrice: decimal.NewFromFloat(eq.RegularMarketPrice),
		PreviousClose:      decimal.NewFromFloat(eq.RegularMarketPreviousClose),
		ShortName:          eq.ShortName,
		LongName:           eq.LongName,
	}, nil
}
