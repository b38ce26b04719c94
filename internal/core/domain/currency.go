package domain

import "github.com/shopspring/decimal"

// RateOperator determines how a currency's rate combines with an amount
// when moving between that currency and the base currency.
type RateOperator string

const (
	// Multiply means the rate is quoted as currency units per one base unit:
	// base -> currency multiplies by the rate, currency -> base divides.
	Multiply RateOperator = "MULTIPLY"
	// Divide is the mirror image of Multiply.
	Divide RateOperator = "DIVIDE"
)

// Currency represents a supported currency in the domain.
// Exactly one active currency carries IsBase = true at any time.
type Currency struct {
	CurrencyID string `json:"currencyID"` // Primary Key (e.g., UUID)
	Code       string `json:"code"`       // ISO-4217 style code (e.g., "USD")
	Name       string `json:"name"`       // e.g., "US Dollar"
	Symbol     string `json:"symbol"`     // e.g., "$"
	IsBase     bool   `json:"isBase"`
	IsActive   bool   `json:"isActive"`
	AuditFields
}

// CurrencyRate is a conversion rate against the base currency.
// Only the latest rate per currency is ever used; the base currency
// itself has an implicit rate of 1 with Multiply.
type CurrencyRate struct {
	RateID     string          `json:"rateID"` // Primary Key (e.g., UUID)
	CurrencyID string          `json:"currencyID"`
	RateToBase decimal.Decimal `json:"rateToBase"` // Must be > 0
	Operator   RateOperator    `json:"operator"`
	AuditFields
}
