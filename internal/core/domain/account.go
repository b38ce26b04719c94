package domain

import (
	"github.com/shopspring/decimal"
)

// AccountKind distinguishes treasuries from banks.
type AccountKind string

const (
	Treasury AccountKind = "TREASURY"
	Bank     AccountKind = "BANK"
)

// Account represents a treasury or bank holding a balance in one home currency.
//
// CurrentBalance must always equal OpeningBalance plus the sum of signed
// converted amounts of every posted entry referencing this account. The live
// field is maintained incrementally inside the posting transaction for O(1)
// reads; the ledger report builder can verify the invariant read-only.
type Account struct {
	AccountID      string          `json:"accountID"` // Primary Key (e.g., UUID)
	Kind           AccountKind     `json:"kind"`
	Name           string          `json:"name"`
	HomeCurrencyID string          `json:"homeCurrencyID"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	// AutoCredit controls whether this account is credited automatically as a
	// transfer destination. Treasuries default to true; banks default to false
	// because bank balances are maintained by the statement reconciliation path.
	AutoCredit bool `json:"autoCredit"`
	IsActive   bool `json:"isActive"`
	AuditFields
}
