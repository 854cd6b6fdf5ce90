package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	apperrors "tijori/internal/errors"
	"tijori/internal/models"
	"tijori/internal/store"
	"tijori/internal/ticker"
)

// Summary totals a dashboard. Unresolved holdings contribute a zero current
// value and are counted in Unresolved.
type Summary struct {
	Invested     decimal.Decimal `json:"invested"`
	CurrentValue decimal.Decimal `json:"current_value"`
	GainLoss     decimal.Decimal `json:"gain_loss"`
	GainLossPct  decimal.Decimal `json:"gain_loss_pct"`
	Unresolved   int             `json:"unresolved"`
}

// Dashboard is the combined view of both holding kinds.
type Dashboard struct {
	Stocks  map[string]StockView `json:"stocks"`
	Funds   map[string]FundView  `json:"funds"`
	Summary Summary              `json:"summary"`
}

// portfolioService handles holding reads and writes.
type portfolioService struct {
	store      store.HoldingStore
	quotes     QuoteResolver
	funds      FundResolver
	reconciler *Reconciler
}

// NewPortfolioService creates a new PortfolioServicer. concurrency bounds the
// number of holdings resolved at once.
func NewPortfolioService(holdings store.HoldingStore, quotes QuoteResolver, funds FundResolver, concurrency int) PortfolioServicer {
	return &portfolioService{
		store:      holdings,
		quotes:     quotes,
		funds:      funds,
		reconciler: NewReconciler(quotes, funds, concurrency),
	}
}

// GetStocks returns every stored equity holding with live prices.
func (s *portfolioService) GetStocks(ctx context.Context, userID string) (map[string]StockView, error) {
	holdings, err := s.store.Stocks(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.reconciler.Stocks(ctx, holdings), nil
}

// GetFunds returns every stored fund holding with live NAVs.
func (s *portfolioService) GetFunds(ctx context.Context, userID string) (map[string]FundView, error) {
	holdings, err := s.store.Funds(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.reconciler.Funds(ctx, holdings), nil
}

// AddStock resolves the ticker once and stores the holding under its base
// symbol, replacing any holding already there. symbolHint, when set, is used
// for the lookup instead of the ticker.
func (s *portfolioService) AddStock(
	ctx context.Context,
	userID, rawTicker, symbolHint string,
	quantity, purchasePrice decimal.Decimal,
) (*models.StockHolding, error) {
	t, err := ticker.Normalize(rawTicker)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Ticker is required")
	}
	if !quantity.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Quantity must be positive")
	}
	if !purchasePrice.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Purchase price must be positive")
	}

	lookup := strings.TrimSpace(symbolHint)
	if lookup == "" {
		lookup = rawTicker
	}

	quote := s.quotes.Resolve(ctx, lookup)
	if !quote.Resolved() {
		return nil, apperrors.WithMessage(apperrors.ErrNoPriceFound,
			fmt.Sprintf("Could not find stock information for %s", strings.TrimSpace(rawTicker)))
	}

	holding := models.StockHolding{
		UserID:        userID,
		Ticker:        t.Base,
		Symbol:        quote.Symbol,
		Name:          quote.Name,
		Quantity:      quantity,
		PurchasePrice: purchasePrice,
		Exchange:      string(quote.Exchange),
	}
	if err := s.store.PutStock(ctx, userID, holding); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &holding, nil
}

// AddFund checks the scheme with one provider call and stores the holding
// only when that call succeeded.
func (s *portfolioService) AddFund(
	ctx context.Context,
	userID, schemeCode string,
	units, purchaseNAV decimal.Decimal,
) (*models.FundHolding, error) {
	schemeCode = strings.TrimSpace(schemeCode)
	if schemeCode == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Scheme code is required")
	}
	if !units.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Units must be positive")
	}
	if !purchaseNAV.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Purchase NAV must be positive")
	}

	fund := s.funds.Resolve(ctx, schemeCode)
	if fund.Failed() {
		return nil, apperrors.Wrap(
			apperrors.WithMessage(apperrors.ErrUnknownScheme, fmt.Sprintf("Mutual fund scheme code %s not found", schemeCode)),
			errors.New(fund.Error),
		)
	}

	holding := models.FundHolding{
		UserID:      userID,
		SchemeCode:  schemeCode,
		Name:        fund.Name,
		Units:       units,
		PurchaseNAV: purchaseNAV,
	}
	if err := s.store.PutFund(ctx, userID, holding); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &holding, nil
}

// GetDashboard reconciles both holding kinds concurrently and totals them.
func (s *portfolioService) GetDashboard(ctx context.Context, userID string) (*Dashboard, error) {
	var (
		stocks map[string]StockView
		funds  map[string]FundView
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stocks, err = s.GetStocks(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		funds, err = s.GetFunds(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Dashboard{Stocks: stocks, Funds: funds, Summary: summarize(stocks, funds)}, nil
}

func summarize(stocks map[string]StockView, funds map[string]FundView) Summary {
	sum := Summary{
		Invested:     decimal.Zero,
		CurrentValue: decimal.Zero,
	}
	for _, v := range stocks {
		sum.Invested = sum.Invested.Add(v.Invested)
		sum.CurrentValue = sum.CurrentValue.Add(v.CurrentValue)
		if v.Error != "" {
			sum.Unresolved++
		}
	}
	for _, v := range funds {
		sum.Invested = sum.Invested.Add(v.Invested)
		sum.CurrentValue = sum.CurrentValue.Add(v.CurrentValue)
		if v.Error != "" {
			sum.Unresolved++
		}
	}

	sum.GainLoss = sum.CurrentValue.Sub(sum.Invested)
	sum.GainLossPct = decimal.Zero
	if sum.Invested.IsPositive() {
		sum.GainLossPct = sum.GainLoss.Div(sum.Invested).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return sum
}
