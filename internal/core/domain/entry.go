package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType classifies how an entry moves money.
type EntryType string

const (
	Receipt  EntryType = "RECEIPT"
	Payment  EntryType = "PAYMENT"
	Transfer EntryType = "TRANSFER"
	// VoidReversal is a manually created offsetting entry that flows through
	// the normal state machine and appears chronologically in the ledger.
	// The automated void path does not create entries of this type.
	VoidReversal EntryType = "VOID_REVERSAL"
)

// EntryStatus is the lifecycle state of an entry.
type EntryStatus string

const (
	Draft           EntryStatus = "DRAFT"
	PendingApproval EntryStatus = "PENDING_APPROVAL"
	Approved        EntryStatus = "APPROVED"
	Posted          EntryStatus = "POSTED"
	Rejected        EntryStatus = "REJECTED"
	Voided          EntryStatus = "VOIDED"
)

// allowedTransitions is the full state machine. POSTED -> VOIDED is listed
// here for completeness but is only reachable through the void engine,
// never a direct status write.
var allowedTransitions = map[EntryStatus][]EntryStatus{
	Draft:           {PendingApproval, Rejected},
	PendingApproval: {Approved, Rejected},
	Approved:        {Posted},
	Posted:          {Voided},
}

// CanTransition reports whether moving from s to target is a legal transition.
func (s EntryStatus) CanTransition(target EntryStatus) bool {
	for _, t := range allowedTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible from s.
func (s EntryStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// TransferType distinguishes the destination side of a transfer.
type TransferType string

const (
	TreasuryToTreasury TransferType = "TREASURY_TO_TREASURY"
	TreasuryToBank     TransferType = "TREASURY_TO_BANK"
)

// TransferDetails resolves the destination of a transfer entry.
type TransferDetails struct {
	TransferType TransferType `json:"transferType"`
	ToAccountID  string       `json:"toAccountID"`
	ToCurrencyID string       `json:"toCurrencyID"`
}

// Entry is a posting request moving through the approval state machine.
//
// ExchangeRate and ConvertedAmount are frozen at the moment of posting: the
// rate resolved then is snapshotted into the entry for future replay and
// audit, regardless of later rate changes.
type Entry struct {
	EntryID          string           `json:"entryID"`     // Primary Key (e.g., UUID)
	EntryNumber      string           `json:"entryNumber"` // Assigned at creation, immutable, unique
	AccountID        string           `json:"accountID"`
	EntryDate        time.Time        `json:"entryDate"`
	Type             EntryType        `json:"type"`
	Amount           decimal.Decimal  `json:"amount"` // Expressed in SourceCurrencyID
	SourceCurrencyID string           `json:"sourceCurrencyID"`
	ExchangeRate     decimal.Decimal  `json:"exchangeRate"`    // Effective source -> home multiplier
	ConvertedAmount  decimal.Decimal  `json:"convertedAmount"` // Amount in the account's home currency
	BankCharges      decimal.Decimal  `json:"bankCharges"`
	OtherCharges     decimal.Decimal  `json:"otherCharges"`
	Status           EntryStatus      `json:"status"`
	BalanceBefore    decimal.Decimal  `json:"balanceBefore"`
	BalanceAfter     decimal.Decimal  `json:"balanceAfter"`
	Transfer         *TransferDetails `json:"transfer,omitempty"`
	LinkedRequestID  *string          `json:"linkedRequestID,omitempty"`
	ApprovedBy       *string          `json:"approvedBy,omitempty"`
	ApprovedAt       *time.Time       `json:"approvedAt,omitempty"`
	PostedBy         *string          `json:"postedBy,omitempty"`
	PostedAt         *time.Time       `json:"postedAt,omitempty"`
	AuditFields
}

// Charges is the total of bank and other charges, deducted from the source
// account only.
func (e *Entry) Charges() decimal.Decimal {
	return e.BankCharges.Add(e.OtherCharges)
}
