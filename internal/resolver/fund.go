package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tijori/internal/provider"
)

// FundSource is the mutual fund NAV provider.
type FundSource interface {
	Scheme(ctx context.Context, schemeCode string) (*provider.SchemeRecord, error)
}

// FundResult is the resolved view of one scheme. Error is set when the
// provider could not be reached or rejected the code.
type FundResult struct {
	SchemeCode string          `json:"scheme_code"`
	Name       string          `json:"name"`
	CurrentNAV decimal.Decimal `json:"current_nav"`
	Error      string          `json:"error,omitempty"`
}

// Failed reports whether the provider call itself failed.
func (f FundResult) Failed() bool {
	return f.Error != ""
}

// DefaultFundName is the display name used when no scheme name is known.
func DefaultFundName(schemeCode string) string {
	return "Fund " + schemeCode
}

// FundResolver resolves mutual fund scheme codes.
type FundResolver struct {
	source FundSource
	log    *zap.SugaredLogger
}

// NewFundResolver creates a FundResolver.
func NewFundResolver(source FundSource, log *zap.SugaredLogger) *FundResolver {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &FundResolver{source: source, log: log}
}

// Resolve makes one provider call for schemeCode. The NAV is always taken from
// the newest data point.
func (r *FundResolver) Resolve(ctx context.Context, schemeCode string) (res FundResult) {
	schemeCode = strings.TrimSpace(schemeCode)
	res = FundResult{SchemeCode: schemeCode, Name: DefaultFundName(schemeCode), CurrentNAV: decimal.Zero}

	defer func() {
		if rec := recover(); rec != nil {
			r.log.Errorw("fund lookup panicked", "scheme_code", schemeCode, "panic", rec)
			res = FundResult{
				SchemeCode: schemeCode,
				Name:       DefaultFundName(schemeCode),
				CurrentNAV: decimal.Zero,
				Error:      fmt.Sprintf("fund lookup failed: %v", rec),
			}
		}
	}()

	rec, err := r.source.Scheme(ctx, schemeCode)
	if err != nil {
		res.Error = failureReason(err)
		r.log.Warnw("fund lookup failed", "scheme_code", schemeCode, "error", err)
		return res
	}
	if rec == nil {
		res.Error = "fund provider returned an empty response"
		return res
	}

	if name := strings.TrimSpace(rec.Meta.SchemeName); name != "" {
		res.Name = name
	}
	if len(rec.Data) > 0 && rec.Data[0].NAV.IsPositive() {
		res.CurrentNAV = rec.Data[0].NAV
	}
	return res
}

func failureReason(err error) string {
	var se *provider.StatusError
	if errors.As(err, &se) {
		return fmt.Sprintf("fund provider returned status %d", se.Code)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return "fund provider timed out"
	}
	return "fund provider unavailable"
}
