package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RowDirection classifies a ledger row's effect for statement display.
type RowDirection string

const (
	RowDebit  RowDirection = "DEBIT"
	RowCredit RowDirection = "CREDIT"
)

// LedgerRow is an immutable record of one posted entry's signed effect on a
// single account. A transfer produces two rows: a credit on the source and a
// debit on the destination (when the destination auto-credits).
//
// Amount is the signed net effect in the account's home currency, charges
// included. Replay skips rows whose entry has since been voided.
type LedgerRow struct {
	RowID       string          `json:"rowID"` // Primary Key (e.g., UUID)
	EntryID     string          `json:"entryID"`
	EntryNumber string          `json:"entryNumber"`
	AccountID   string          `json:"accountID"`
	EntryDate   time.Time       `json:"entryDate"`
	EntryType   EntryType       `json:"entryType"`
	Direction   RowDirection    `json:"direction"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// LedgerLine is one row of a rendered ledger report with its running balance.
type LedgerLine struct {
	EntryID        string          `json:"entryID"`
	EntryNumber    string          `json:"entryNumber"`
	AccountID      string          `json:"accountID"`
	EntryDate      time.Time       `json:"entryDate"`
	EntryType      EntryType       `json:"entryType"`
	Direction      RowDirection    `json:"direction"`
	Amount         decimal.Decimal `json:"amount"` // Signed effect on the account
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// LedgerReport is a chronological running-balance statement for a date range,
// optionally filtered to a single account.
type LedgerReport struct {
	AccountID      string          `json:"accountID,omitempty"`
	DateFrom       time.Time       `json:"dateFrom"`
	DateTo         time.Time       `json:"dateTo"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Lines          []LedgerLine    `json:"lines"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}
