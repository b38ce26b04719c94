package models

import "github.com/shopspring/decimal"

// AccountKind distinguishes treasuries from banks.
type AccountKind string

const (
	Treasury AccountKind = "TREASURY"
	Bank     AccountKind = "BANK"
)

// Account represents a row in the accounts table.
type Account struct {
	AccountID      string          `json:"accountID"` // Primary Key (e.g., UUID)
	Kind           AccountKind     `json:"kind"`
	Name           string          `json:"name"`
	HomeCurrencyID string          `json:"homeCurrencyID"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"` // Only posting/void transactions write this
	AutoCredit     bool            `json:"autoCredit"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}
