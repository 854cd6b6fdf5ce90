package services

import (
	"context"

	"github.com/shopspring/decimal"

	"tijori/internal/models"
	"tijori/internal/resolver"
)

// QuoteResolver resolves a raw ticker to a priced quote. It never fails; an
// unresolved ticker comes back as the sentinel result.
type QuoteResolver interface {
	Resolve(ctx context.Context, rawTicker string) resolver.QuoteResult
}

// FundResolver resolves a scheme code to its latest NAV.
type FundResolver interface {
	Resolve(ctx context.Context, schemeCode string) resolver.FundResult
}

// MarketServicer exposes ad hoc lookups that touch no stored state.
type MarketServicer interface {
	Quote(ctx context.Context, rawTicker string) (resolver.QuoteResult, error)
	Fund(ctx context.Context, schemeCode string) (resolver.FundResult, error)
}

// PortfolioServicer defines the contract for holding reads and writes. Reads
// only fail when the store fails; upstream failures degrade individual views.
type PortfolioServicer interface {
	GetStocks(ctx context.Context, userID string) (map[string]StockView, error)
	GetFunds(ctx context.Context, userID string) (map[string]FundView, error)
	AddStock(ctx context.Context, userID, rawTicker, symbolHint string, quantity, purchasePrice decimal.Decimal) (*models.StockHolding, error)
	AddFund(ctx context.Context, userID, schemeCode string, units, purchaseNAV decimal.Decimal) (*models.FundHolding, error)
	GetDashboard(ctx context.Context, userID string) (*Dashboard, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
