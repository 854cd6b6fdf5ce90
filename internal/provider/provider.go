// Package provider wraps the upstream market-data and fund-data services.
// Every client returns plain values or an error; deciding what a failure
// means is left to the resolvers.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// ErrNoData is returned when an upstream answered but had nothing usable.
var ErrNoData = errors.New("no data")

// StatusError reports a non-success HTTP status from an upstream.
type StatusError struct {
	URL  string
	Code int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Code, e.URL)
}

// IsStatusError reports whether err carries a non-success upstream status.
func IsStatusError(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// LiveQuote is the subset of a live quote the resolvers care about.
type LiveQuote struct {
	Symbol             string
	RegularMarketPrice decimal.Decimal
	PreviousClose      decimal.Decimal
	ShortName          string
	LongName           string
}

// Options configures the HTTP based clients.
type Options struct {
	HTTPClient *http.Client
	BaseURL    string
	// Retries is the number of extra attempts made after a transport error.
	// Non-success statuses and malformed bodies are never retried.
	Retries uint64
}

func (o Options) client() *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}
	return http.DefaultClient
}

// getJSON issues a GET to url and decodes a successful body into out.
func getJSON(ctx context.Context, opts Options, url string, out any) error {
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("building request: %w", err))
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := opts.client().Do(req)
		if err != nil {
			return fmt.Errorf("http request: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return backoff.Permanent(&StatusError{URL: url, Code: resp.StatusCode})
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("decoding response: %w", err))
		}
		return nil
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = 200 * time.Millisecond
	eb.MaxElapsedTime = 0
	return backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(eb, opts.Retries), ctx))
}
