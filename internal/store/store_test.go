package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"

	"tijori/internal/models"
	"tijori/internal/testutil"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func backends(t *testing.T) map[string]HoldingStore {
	t.Helper()
	rs, _ := newRedisStore(t)
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
	return map[string]HoldingStore{
		"gorm":  NewGormStore(db),
		"redis": rs,
	}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestHoldingStore_Stocks(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			got, err := s.Stocks(ctx, "user-1")
			testutil.AssertNoError(t, err)
			if len(got) != 0 {
				t.Fatalf("expected no holdings, got %d", len(got))
			}

			testutil.AssertNoError(t, s.PutStock(ctx, "user-1", models.StockHolding{
				Ticker: "TCS", Symbol: "TCS.NS", Name: "TCS", Quantity: d("10"), PurchasePrice: d("3000"), Exchange: "NSE",
			}))
			testutil.AssertNoError(t, s.PutStock(ctx, "user-1", models.StockHolding{
				Ticker: "INFY", Symbol: "INFY.NS", Name: "Infosys", Quantity: d("5"), PurchasePrice: d("1400.5"), Exchange: "NSE",
			}))
			testutil.AssertNoError(t, s.PutStock(ctx, "user-2", models.StockHolding{
				Ticker: "TCS", Symbol: "TCS.BO", Name: "TCS", Quantity: d("1"), PurchasePrice: d("1"), Exchange: "BSE",
			}))

			got, err = s.Stocks(ctx, "user-1")
			testutil.AssertNoError(t, err)
			if len(got) != 2 {
				t.Fatalf("expected 2 holdings, got %d", len(got))
			}
			tcs := got["TCS"]
			if tcs.Symbol != "TCS.NS" || !tcs.Quantity.Equal(d("10")) || !tcs.PurchasePrice.Equal(d("3000")) {
				t.Errorf("unexpected TCS holding %+v", tcs)
			}
			if !got["INFY"].PurchasePrice.Equal(d("1400.5")) {
				t.Errorf("expected 1400.5, got %s", got["INFY"].PurchasePrice)
			}
		})
	}
}

func TestHoldingStore_PutStockOverwrites(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			testutil.AssertNoError(t, s.PutStock(ctx, "u", models.StockHolding{
				Ticker: "SBIN", Symbol: "SBIN.NS", Name: "SBI", Quantity: d("10"), PurchasePrice: d("500"), Exchange: "NSE",
			}))
			testutil.AssertNoError(t, s.PutStock(ctx, "u", models.StockHolding{
				Ticker: "SBIN", Symbol: "SBIN.BO", Name: "State Bank", Quantity: d("3"), PurchasePrice: d("700"), Exchange: "BSE",
			}))

			got, err := s.Stocks(ctx, "u")
			testutil.AssertNoError(t, err)
			if len(got) != 1 {
				t.Fatalf("expected 1 holding, got %d", len(got))
			}
			h := got["SBIN"]
			if h.Symbol != "SBIN.BO" || h.Name != "State Bank" || h.Exchange != "BSE" {
				t.Errorf("expected full replacement, got %+v", h)
			}
			if !h.Quantity.Equal(d("3")) || !h.PurchasePrice.Equal(d("700")) {
				t.Errorf("expected quantity 3 at 700, got %s at %s", h.Quantity, h.PurchasePrice)
			}
		})
	}
}

func TestHoldingStore_Funds(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			testutil.AssertNoError(t, s.PutFund(ctx, "u", models.FundHolding{
				SchemeCode: "120503", Name: "Axis ELSS", Units: d("12.5"), PurchaseNAV: d("60"),
			}))
			testutil.AssertNoError(t, s.PutFund(ctx, "u", models.FundHolding{
				SchemeCode: "120503", Name: "Axis ELSS Direct", Units: d("20"), PurchaseNAV: d("65.25"),
			}))

			got, err := s.Funds(ctx, "u")
			testutil.AssertNoError(t, err)
			if len(got) != 1 {
				t.Fatalf("expected 1 fund, got %d", len(got))
			}
			f := got["120503"]
			if f.Name != "Axis ELSS Direct" || !f.Units.Equal(d("20")) || !f.PurchaseNAV.Equal(d("65.25")) {
				t.Errorf("unexpected fund %+v", f)
			}

			other, err := s.Funds(ctx, "someone-else")
			testutil.AssertNoError(t, err)
			if len(other) != 0 {
				t.Errorf("expected holdings to be scoped per user, got %d", len(other))
			}
		})
	}
}

func TestRedisStore_Layout(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	testutil.AssertNoError(t, s.PutStock(ctx, "42", models.StockHolding{
		Ticker: "TCS", Symbol: "TCS.NS", Name: "TCS", Quantity: d("1"), PurchasePrice: d("2"), Exchange: "NSE",
	}))
	testutil.AssertNoError(t, s.PutFund(ctx, "42", models.FundHolding{
		SchemeCode: "100", Name: "F", Units: d("1"), PurchaseNAV: d("2"),
	}))

	if !mr.Exists("users:42:stocks") {
		t.Error("expected users:42:stocks hash")
	}
	if !mr.Exists("users:42:mutual_funds") {
		t.Error("expected users:42:mutual_funds hash")
	}
	if v := mr.HGet("users:42:stocks", "TCS"); v == "" {
		t.Error("expected TCS field in stocks hash")
	}
}

func TestRedisStore_CorruptValue(t *testing.T) {
	s, mr := newRedisStore(t)
	mr.HSet("users:u:stocks", "BAD", "not json")

	_, err := s.Stocks(context.Background(), "u")
	testutil.AssertErrorMentions(t, err, "BAD")
}

func TestRedisStore_Unavailable(t *testing.T) {
	s, mr := newRedisStore(t)
	mr.Close()

	if _, err := s.Funds(context.Background(), "u"); err == nil {
		t.Fatal("expected error when redis is down")
	}
}
