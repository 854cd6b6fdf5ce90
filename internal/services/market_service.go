package services

import (
	"context"
	"strings"

	apperrors "tijori/internal/errors"
	"tijori/internal/resolver"
)

// marketService serves lookups that do not touch stored holdings.
type marketService struct {
	quotes QuoteResolver
	funds  FundResolver
}

// NewMarketService creates a new MarketServicer.
func NewMarketService(quotes QuoteResolver, funds FundResolver) MarketServicer {
	return &marketService{quotes: quotes, funds: funds}
}

// Quote resolves rawTicker. An unresolved ticker is returned as the sentinel
// result, not as an error.
func (s *marketService) Quote(ctx context.Context, rawTicker string) (resolver.QuoteResult, error) {
	if strings.TrimSpace(rawTicker) == "" {
		return resolver.QuoteResult{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Ticker is required")
	}
	return s.quotes.Resolve(ctx, rawTicker), nil
}

// Fund resolves schemeCode, tagging provider failures on the result.
func (s *marketService) Fund(ctx context.Context, schemeCode string) (resolver.FundResult, error) {
	if strings.TrimSpace(schemeCode) == "" {
		return resolver.FundResult{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Scheme code is required")
	}
	return s.funds.Resolve(ctx, schemeCode), nil
}
