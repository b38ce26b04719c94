package models

import "github.com/shopspring/decimal"

// RateOperator mirrors the domain operator enum at the persistence boundary.
type RateOperator string

const (
	Multiply RateOperator = "MULTIPLY"
	Divide   RateOperator = "DIVIDE"
)

// Currency represents a row in the currencies table.
type Currency struct {
	CurrencyID string `json:"currencyID"` // Primary Key (e.g., UUID)
	Code       string `json:"code"`       // Unique, e.g. "USD"
	Name       string `json:"name"`
	Symbol     string `json:"symbol"`
	IsBase     bool   `json:"isBase"` // Partial unique index keeps one true
	IsActive   bool   `json:"isActive"`
	AuditFields
}

// CurrencyRate represents a row in the currency_rates table. Rates are
// append-only; the latest row per currency wins.
type CurrencyRate struct {
	RateID     string          `json:"rateID"` // Primary Key (e.g., UUID)
	CurrencyID string          `json:"currencyID"`
	RateToBase decimal.Decimal `json:"rateToBase"`
	Operator   RateOperator    `json:"operator"`
	AuditFields
}
