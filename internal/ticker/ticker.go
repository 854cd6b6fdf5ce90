// Package ticker canonicalizes user-entered equity tickers.
package ticker

import (
	"errors"
	"strings"
)

// Exchange identifies the market a symbol is quoted on.
type Exchange string

const (
	ExchangeNSE     Exchange = "NSE"
	ExchangeBSE     Exchange = "BSE"
	ExchangeUnknown Exchange = "Unknown"
)

// ErrEmpty is returned by Normalize for empty or whitespace-only input.
var ErrEmpty = errors.New("ticker is empty")

// exchangeSuffixes maps exchanges to their Yahoo Finance ticker suffixes.
var exchangeSuffixes = map[Exchange]string{
	ExchangeNSE: ".NS",
	ExchangeBSE: ".BO",
}

// Ticker is a normalized user-facing identifier.
type Ticker struct {
	Raw          string
	Base         string
	ExchangeHint Exchange
}

// Normalize trims and upper-cases raw, strips a trailing .NS or .BO suffix
// and records the exchange that suffix implies.
func Normalize(raw string) (Ticker, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return Ticker{Raw: raw, ExchangeHint: ExchangeUnknown}, ErrEmpty
	}

	t := Ticker{Raw: raw, Base: s, ExchangeHint: ExchangeUnknown}
	for exchange, suffix := range exchangeSuffixes {
		if strings.HasSuffix(s, suffix) && len(s) > len(suffix) {
			t.Base = s[:len(s)-len(suffix)]
			t.ExchangeHint = exchange
			break
		}
	}
	return t, nil
}

// Qualify returns base with the Yahoo suffix of exchange appended. Unknown
// exchanges return base unchanged.
func Qualify(base string, exchange Exchange) string {
	if suffix, ok := exchangeSuffixes[exchange]; ok {
		return base + suffix
	}
	return base
}

// IsQualified reports whether symbol carries a known exchange suffix.
func IsQualified(symbol string) bool {
	for _, suffix := range exchangeSuffixes {
		if strings.HasSuffix(symbol, suffix) && len(symbol) > len(suffix) {
			return true
		}
	}
	return false
}
