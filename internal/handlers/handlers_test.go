package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"tijori/internal/middleware"
	"tijori/internal/models"
	"tijori/internal/resolver"
	"tijori/internal/services"
	"tijori/internal/validator"
)

// --- mock services ---

type mockPortfolioService struct {
	getStocksFn    func(ctx context.Context, userID string) (map[string]services.StockView, error)
	getFundsFn     func(ctx context.Context, userID string) (map[string]services.FundView, error)
	addStockFn     func(ctx context.Context, userID, rawTicker, symbolHint string, quantity, purchasePrice decimal.Decimal) (*models.StockHolding, error)
	addFundFn      func(ctx context.Context, userID, schemeCode string, units, purchaseNAV decimal.Decimal) (*models.FundHolding, error)
	getDashboardFn func(ctx context.Context, userID string) (*services.Dashboard, error)
}

func (m *mockPortfolioService) GetStocks(ctx context.Context, userID string) (map[string]services.StockView, error) {
	if m.getStocksFn != nil {
		return m.getStocksFn(ctx, userID)
	}
	return map[string]services.StockView{}, nil
}

func (m *mockPortfolioService) GetFunds(ctx context.Context, userID string) (map[string]services.FundView, error) {
	if m.getFundsFn != nil {
		return m.getFundsFn(ctx, userID)
	}
	return map[string]services.FundView{}, nil
}

func (m *mockPortfolioService) AddStock(ctx context.Context, userID, rawTicker, symbolHint string, quantity, purchasePrice decimal.Decimal) (*models.StockHolding, error) {
	if m.addStockFn != nil {
		return m.addStockFn(ctx, userID, rawTicker, symbolHint, quantity, purchasePrice)
	}
	return &models.StockHolding{}, nil
}

func (m *mockPortfolioService) AddFund(ctx context.Context, userID, schemeCode string, units, purchaseNAV decimal.Decimal) (*models.FundHolding, error) {
	if m.addFundFn != nil {
		return m.addFundFn(ctx, userID, schemeCode, units, purchaseNAV)
	}
	return &models.FundHolding{}, nil
}

func (m *mockPortfolioService) GetDashboard(ctx context.Context, userID string) (*services.Dashboard, error) {
	if m.getDashboardFn != nil {
		return m.getDashboardFn(ctx, userID)
	}
	return &services.Dashboard{}, nil
}

var _ services.PortfolioServicer = (*mockPortfolioService)(nil)

type mockMarketService struct {
	quoteFn func(ctx context.Context, raw string) (resolver.QuoteResult, error)
	fundFn  func(ctx context.Context, code string) (resolver.FundResult, error)
}

func (m *mockMarketService) Quote(ctx context.Context, raw string) (resolver.QuoteResult, error) {
	if m.quoteFn != nil {
		return m.quoteFn(ctx, raw)
	}
	return resolver.QuoteResult{}, nil
}

func (m *mockMarketService) Fund(ctx context.Context, code string) (resolver.FundResult, error) {
	if m.fundFn != nil {
		return m.fundFn(ctx, code)
	}
	return resolver.FundResult{}, nil
}

var _ services.MarketServicer = (*mockMarketService)(nil)

type auditEntry struct {
	userID, action, resourceID string
}

type mockAuditService struct {
	entries []auditEntry
}

func (m *mockAuditService) Log(userID, action, _, resourceID, _ string, _ map[string]any) {
	m.entries = append(m.entries, auditEntry{userID: userID, action: action, resourceID: resourceID})
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func errorMessage(result map[string]interface{}) string {
	errObj, _ := result["error"].(map[string]interface{})
	msg, _ := errObj["message"].(string)
	return msg
}
