package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultChartURL is the Yahoo Finance v8 chart endpoint.
const DefaultChartURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// ChartMeta is the metadata block of a chart payload.
type ChartMeta struct {
	Symbol             string           `json:"symbol"`
	Currency           string           `json:"currency"`
	ShortName          string           `json:"shortName"`
	RegularMarketPrice *decimal.Decimal `json:"regularMarketPrice"`
}

// yahooChartResponse is the v8 chart response envelope.
type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta ChartMeta `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// ChartClient calls the chart endpoint directly, without going through the
// time-series library. It is the last resort when that library yields nothing.
type ChartClient struct {
	opts Options
}

// NewChartClient creates a ChartClient. An empty BaseURL selects DefaultChartURL.
func NewChartClient(opts Options) *ChartClient {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultChartURL
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &ChartClient{opts: opts}
}

// ChartMeta fetches the 1d chart for symbol and returns its metadata.
func (c *ChartClient) ChartMeta(ctx context.Context, symbol string) (*ChartMeta, error) {
	u := c.opts.BaseURL + "/" + url.PathEscape(symbol) + "?interval=1d"

	var resp yahooChartResponse
	if err := getJSON(ctx, c.opts, u, &resp); err != nil {
		return nil, err
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("chart error for %s: %s: %s: %w",
			symbol, resp.Chart.Error.Code, resp.Chart.Error.Description, ErrNoData)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("empty chart result for %s: %w", symbol, ErrNoData)
	}
	meta := resp.Chart.Result[0].Meta
	return &meta, nil
}
