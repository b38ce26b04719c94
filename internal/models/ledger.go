package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RowDirection classifies a ledger row for statement display.
type RowDirection string

// LedgerRow represents a row in the append-only ledger_rows table. Rows are
// never updated or deleted; a void flips the parent entry's status instead.
type LedgerRow struct {
	RowID       string          `json:"rowID"` // Primary Key (e.g., UUID)
	EntryID     string          `json:"entryID"`
	EntryNumber string          `json:"entryNumber"`
	AccountID   string          `json:"accountID"`
	EntryDate   time.Time       `json:"entryDate"`
	EntryType   EntryType       `json:"entryType"`
	Direction   RowDirection    `json:"direction"`
	Amount      decimal.Decimal `json:"amount"` // Signed, home currency of AccountID
	CreatedAt   time.Time       `json:"createdAt"`
}
