package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType classifies how an entry moves money.
type EntryType string

const (
	Receipt      EntryType = "RECEIPT"
	Payment      EntryType = "PAYMENT"
	Transfer     EntryType = "TRANSFER"
	VoidReversal EntryType = "VOID_REVERSAL"
)

// EntryStatus is the lifecycle state of an entry row.
type EntryStatus string

const (
	Draft           EntryStatus = "DRAFT"
	PendingApproval EntryStatus = "PENDING_APPROVAL"
	Approved        EntryStatus = "APPROVED"
	Posted          EntryStatus = "POSTED"
	Rejected        EntryStatus = "REJECTED"
	Voided          EntryStatus = "VOIDED"
)

// TransferType distinguishes the destination side of a transfer.
type TransferType string

// Entry represents a row in the entries table. The transfer columns are null
// for non-transfer entries; the conversion and balance snapshot columns are
// written once, inside the posting transaction.
type Entry struct {
	EntryID          string          `json:"entryID"`     // Primary Key (e.g., UUID)
	EntryNumber      string          `json:"entryNumber"` // Unique, never reissued
	AccountID        string          `json:"accountID"`
	EntryDate        time.Time       `json:"entryDate"`
	Type             EntryType       `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	SourceCurrencyID string          `json:"sourceCurrencyID"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	ConvertedAmount  decimal.Decimal `json:"convertedAmount"`
	BankCharges      decimal.Decimal `json:"bankCharges"`
	OtherCharges     decimal.Decimal `json:"otherCharges"`
	Status           EntryStatus     `json:"status"`
	BalanceBefore    decimal.Decimal `json:"balanceBefore"`
	BalanceAfter     decimal.Decimal `json:"balanceAfter"`
	TransferType     *TransferType   `json:"transferType,omitempty"`
	ToAccountID      *string         `json:"toAccountID,omitempty"`
	ToCurrencyID     *string         `json:"toCurrencyID,omitempty"`
	LinkedRequestID  *string         `json:"linkedRequestID,omitempty"`
	ApprovedBy       *string         `json:"approvedBy,omitempty"`
	ApprovedAt       *time.Time      `json:"approvedAt,omitempty"`
	PostedBy         *string         `json:"postedBy,omitempty"`
	PostedAt         *time.Time      `json:"postedAt,omitempty"`
	AuditFields
}
