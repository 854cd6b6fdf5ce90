// Package store persists user holdings. Holdings are documents keyed by user
// ID and then by ticker or scheme code; a put replaces the whole document.
package store

import (
	"context"

	"tijori/internal/models"
)

// HoldingStore is the persistence contract the portfolio service depends on.
type HoldingStore interface {
	// Stocks returns the user's equity holdings keyed by base ticker.
	Stocks(ctx context.Context, userID string) (map[string]models.StockHolding, error)
	// PutStock creates or fully replaces the holding under h.Ticker.
	PutStock(ctx context.Context, userID string, h models.StockHolding) error
	// Funds returns the user's fund holdings keyed by scheme code.
	Funds(ctx context.Context, userID string) (map[string]models.FundHolding, error)
	// PutFund creates or fully replaces the holding under h.SchemeCode.
	PutFund(ctx context.Context, userID string, h models.FundHolding) error
}
