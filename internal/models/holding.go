package models

import "github.com/shopspring/decimal"

// StockHolding is a user's position in one equity, keyed by base ticker.
// Adding the same ticker again replaces every field.
type StockHolding struct {
	Base
	UserID        string          `gorm:"not null;uniqueIndex:idx_stock_holdings_user_ticker" json:"-"`
	Ticker        string          `gorm:"not null;uniqueIndex:idx_stock_holdings_user_ticker" json:"ticker"`
	Symbol        string          `gorm:"not null" json:"symbol"`
	Name          string          `gorm:"not null" json:"name"`
	Quantity      decimal.Decimal `gorm:"type:numeric(20,6);not null" json:"quantity"`
	PurchasePrice decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"purchase_price"`
	Exchange      string          `gorm:"not null" json:"exchange"`
}

// FundHolding is a user's position in one mutual fund scheme.
type FundHolding struct {
	Base
	UserID      string          `gorm:"not null;uniqueIndex:idx_fund_holdings_user_scheme" json:"-"`
	SchemeCode  string          `gorm:"not null;uniqueIndex:idx_fund_holdings_user_scheme" json:"scheme_code"`
	Name        string          `gorm:"not null" json:"name"`
	Units       decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"units"`
	PurchaseNAV decimal.Decimal `gorm:"column:purchase_nav;type:numeric(20,4);not null" json:"purchase_nav"`
}
