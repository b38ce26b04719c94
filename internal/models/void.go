package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoidRecord represents a row in the void_records table. Insert-only; one row
// per voided entry, enforced by a unique index on OriginalEntryID.
type VoidRecord struct {
	VoidID          string          `json:"voidID"`     // Primary Key (e.g., UUID)
	VoidNumber      string          `json:"voidNumber"` // Unique, never reissued
	OriginalEntryID string          `json:"originalEntryID"`
	OriginalAmount  decimal.Decimal `json:"originalAmount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	AccountID       string          `json:"accountID"`
	VoidedAt        time.Time       `json:"voidedAt"`
	VoidedBy        string          `json:"voidedBy"`
	Reason          string          `json:"reason,omitempty"`
}
