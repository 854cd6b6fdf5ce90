package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"

	"tijori/internal/models"
)

// stockRecord and fundRecord are the hash field values. Keys live in the
// hash field name, not in the value.
type stockRecord struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Exchange      string          `json:"exchange"`
}

type fundRecord struct {
	Name        string          `json:"name"`
	Units       decimal.Decimal `json:"units"`
	PurchaseNAV decimal.Decimal `json:"purchase_nav"`
}

// RedisStore keeps holdings in two hashes per user.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a RedisStore over an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func stocksKey(userID string) string { return "users:" + userID + ":stocks" }

func fundsKey(userID string) string { return "users:" + userID + ":mutual_funds" }

func (s *RedisStore) Stocks(ctx context.Context, userID string) (map[string]models.StockHolding, error) {
	fields, err := s.client.HGetAll(ctx, stocksKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("HGETALL %s: %w", stocksKey(userID), err)
	}
	out := make(map[string]models.StockHolding, len(fields))
	for key, raw := range fields {
		var rec stockRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("decoding stock holding %s: %w", key, err)
		}
		out[key] = models.StockHolding{
			UserID:        userID,
			Ticker:        key,
			Symbol:        rec.Symbol,
			Name:          rec.Name,
			Quantity:      rec.Quantity,
			PurchasePrice: rec.PurchasePrice,
			Exchange:      rec.Exchange,
		}
	}
	return out, nil
}

func (s *RedisStore) PutStock(ctx context.Context, userID string, h models.StockHolding) error {
	raw, err := json.Marshal(stockRecord{
		Symbol:        h.Symbol,
		Name:          h.Name,
		Quantity:      h.Quantity,
		PurchasePrice: h.PurchasePrice,
		Exchange:      h.Exchange,
	})
	if err != nil {
		return fmt.Errorf("encoding stock holding %s: %w", h.Ticker, err)
	}
	if err := s.client.HSet(ctx, stocksKey(userID), h.Ticker, raw).Err(); err != nil {
		return fmt.Errorf("HSET %s %s: %w", stocksKey(userID), h.Ticker, err)
	}
	return nil
}

func (s *RedisStore) Funds(ctx context.Context, userID string) (map[string]models.FundHolding, error) {
	fields, err := s.client.HGetAll(ctx, fundsKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("HGETALL %s: %w", fundsKey(userID), err)
	}
	out := make(map[string]models.FundHolding, len(fields))
	for key, raw := range fields {
		var rec fundRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("decoding fund holding %s: %w", key, err)
		}
		out[key] = models.FundHolding{
			UserID:      userID,
			SchemeCode:  key,
			Name:        rec.Name,
			Units:       rec.Units,
			PurchaseNAV: rec.PurchaseNAV,
		}
	}
	return out, nil
}

func (s *RedisStore) PutFund(ctx context.Context, userID string, h models.FundHolding) error {
	raw, err := json.Marshal(fundRecord{Name: h.Name, Units: h.Units, PurchaseNAV: h.PurchaseNAV})
	if err != nil {
		return fmt.Errorf("encoding fund holding %s: %w", h.SchemeCode, err)
	}
	if err := s.client.HSet(ctx, fundsKey(userID), h.SchemeCode, raw).Err(); err != nil {
		return fmt.Errorf("HSET %s %s: %w", fundsKey(userID), h.SchemeCode, err)
	}
	return nil
}
