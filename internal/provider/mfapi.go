package provider

import (
	"context"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultFundURL is the mfapi.in scheme endpoint.
const DefaultFundURL = "https://api.mfapi.in/mf"

// SchemeMeta describes a mutual fund scheme.
type SchemeMeta struct {
	FundHouse      string `json:"fund_house"`
	SchemeType     string `json:"scheme_type"`
	SchemeCategory string `json:"scheme_category"`
	SchemeCode     any    `json:"scheme_code"`
	SchemeName     string `json:"scheme_name"`
}

// NAVPoint is one dated NAV value. Dates are dd-mm-yyyy as sent upstream.
type NAVPoint struct {
	Date string          `json:"date"`
	NAV  decimal.Decimal `json:"nav"`
}

// SchemeRecord is the fund provider's answer for one scheme code.
// Data is ordered newest first.
type SchemeRecord struct {
	Meta   SchemeMeta `json:"meta"`
	Data   []NAVPoint `json:"data"`
	Status string     `json:"status"`
}

// FundClient looks up mutual fund schemes by code.
type FundClient struct {
	opts Options
}

// NewFundClient creates a FundClient. An empty BaseURL selects DefaultFundURL.
func NewFundClient(opts Options) *FundClient {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultFundURL
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &FundClient{opts: opts}
}

// Scheme fetches the NAV history for schemeCode.
func (c *FundClient) Scheme(ctx context.Context, schemeCode string) (*SchemeRecord, error) {
	var rec SchemeRecord
	if err := getJSON(ctx, c.opts, c.opts.BaseURL+"/"+url.PathEscape(schemeCode), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
