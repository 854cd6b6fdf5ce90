package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tijori/internal/models"
)

// GormStore keeps holdings in SQL tables.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a GormStore.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Stocks(ctx context.Context, userID string) (map[string]models.StockHolding, error) {
	var rows []models.StockHolding
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("ticker").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading stock holdings: %w", err)
	}
	out := make(map[string]models.StockHolding, len(rows))
	for _, r := range rows {
		out[r.Ticker] = r
	}
	return out, nil
}

func (s *GormStore) PutStock(ctx context.Context, userID string, h models.StockHolding) error {
	h.ID = ""
	h.UserID = userID
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "ticker"}},
		DoUpdates: clause.AssignmentColumns([]string{"symbol", "name", "quantity", "purchase_price", "exchange", "updated_at"}),
	}).Create(&h).Error
	if err != nil {
		return fmt.Errorf("saving stock holding %s: %w", h.Ticker, err)
	}
	return nil
}

func (s *GormStore) Funds(ctx context.Context, userID string) (map[string]models.FundHolding, error) {
	var rows []models.FundHolding
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("scheme_code").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading fund holdings: %w", err)
	}
	out := make(map[string]models.FundHolding, len(rows))
	for _, r := range rows {
		out[r.SchemeCode] = r
	}
	return out, nil
}

func (s *GormStore) PutFund(ctx context.Context, userID string, h models.FundHolding) error {
	h.ID = ""
	h.UserID = userID
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "scheme_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "units", "purchase_nav", "updated_at"}),
	}).Create(&h).Error
	if err != nil {
		return fmt.Errorf("saving fund holding %s: %w", h.SchemeCode, err)
	}
	return nil
}
