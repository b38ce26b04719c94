package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoidRecord is the immutable evidence that a posted entry was reversed.
// Created exactly once per voided entry; never mutated or deleted.
type VoidRecord struct {
	VoidID          string          `json:"voidID"`     // Primary Key (e.g., UUID)
	VoidNumber      string          `json:"voidNumber"` // Assigned at creation, unique
	OriginalEntryID string          `json:"originalEntryID"`
	OriginalAmount  decimal.Decimal `json:"originalAmount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	AccountID       string          `json:"accountID"`
	VoidedAt        time.Time       `json:"voidedAt"`
	VoidedBy        string          `json:"voidedBy"`
	Reason          string          `json:"reason,omitempty"`
}
