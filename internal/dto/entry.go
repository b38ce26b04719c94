package dto

import (
	"time"

	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransferRequest resolves the destination side of a transfer entry.
type TransferRequest struct {
	TransferType string `json:"transferType" binding:"required,oneof=TREASURY_TO_TREASURY TREASURY_TO_BANK"`
	ToAccountID  string `json:"toAccountID" binding:"required"`
}

// CreateEntryRequest defines the payload for creating a draft entry.
// SourceCurrencyID defaults to the account's home currency when omitted.
type CreateEntryRequest struct {
	AccountID        string           `json:"accountID" binding:"required"`
	Date             time.Time        `json:"date" binding:"required"`
	Type             string           `json:"type" binding:"required,oneof=RECEIPT PAYMENT TRANSFER VOID_REVERSAL"`
	Amount           decimal.Decimal  `json:"amount" binding:"required,dgt0"`
	SourceCurrencyID string           `json:"sourceCurrencyID"`
	BankCharges      decimal.Decimal  `json:"bankCharges" binding:"dgte0"`
	OtherCharges     decimal.Decimal  `json:"otherCharges" binding:"dgte0"`
	Transfer         *TransferRequest `json:"transfer"`
	LinkedRequestID  *string          `json:"linkedRequestID"`
}

// RejectEntryRequest carries the optional rejection reason.
type RejectEntryRequest struct {
	Reason string `json:"reason"`
}

// TransferResponse mirrors domain.TransferDetails.
type TransferResponse struct {
	TransferType string `json:"transferType"`
	ToAccountID  string `json:"toAccountID"`
	ToCurrencyID string `json:"toCurrencyID"`
}

// EntryResponse defines the data returned for an entry.
type EntryResponse struct {
	EntryID          string            `json:"entryID"`
	EntryNumber      string            `json:"entryNumber"`
	AccountID        string            `json:"accountID"`
	Date             time.Time         `json:"date"`
	Type             string            `json:"type"`
	Amount           decimal.Decimal   `json:"amount"`
	SourceCurrencyID string            `json:"sourceCurrencyID"`
	ExchangeRate     decimal.Decimal   `json:"exchangeRate"`
	ConvertedAmount  decimal.Decimal   `json:"convertedAmount"`
	BankCharges      decimal.Decimal   `json:"bankCharges"`
	OtherCharges     decimal.Decimal   `json:"otherCharges"`
	Status           string            `json:"status"`
	BalanceBefore    decimal.Decimal   `json:"balanceBefore"`
	BalanceAfter     decimal.Decimal   `json:"balanceAfter"`
	Transfer         *TransferResponse `json:"transfer,omitempty"`
	LinkedRequestID  *string           `json:"linkedRequestID,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	CreatedBy        string            `json:"createdBy"`
}

// ToEntryResponse converts a domain.Entry to EntryResponse DTO.
func ToEntryResponse(e *domain.Entry) EntryResponse {
	resp := EntryResponse{
		EntryID:          e.EntryID,
		EntryNumber:      e.EntryNumber,
		AccountID:        e.AccountID,
		Date:             e.EntryDate,
		Type:             string(e.Type),
		Amount:           e.Amount,
		SourceCurrencyID: e.SourceCurrencyID,
		ExchangeRate:     e.ExchangeRate,
		ConvertedAmount:  e.ConvertedAmount,
		BankCharges:      e.BankCharges,
		OtherCharges:     e.OtherCharges,
		Status:           string(e.Status),
		BalanceBefore:    e.BalanceBefore,
		BalanceAfter:     e.BalanceAfter,
		LinkedRequestID:  e.LinkedRequestID,
		CreatedAt:        e.CreatedAt,
		CreatedBy:        e.CreatedBy,
	}
	if e.Transfer != nil {
		resp.Transfer = &TransferResponse{
			TransferType: string(e.Transfer.TransferType),
			ToAccountID:  e.Transfer.ToAccountID,
			ToCurrencyID: e.Transfer.ToCurrencyID,
		}
	}
	return resp
}

// ToEntryResponses converts a slice of domain.Entry to []EntryResponse.
func ToEntryResponses(entries []domain.Entry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToEntryResponse(&e)
	}
	return responses
}

// ListEntriesParams holds filters for listing entries.
type ListEntriesParams struct {
	AccountID *string `form:"accountID"`
	Status    *string `form:"status"`
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse is a token-paginated page of entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}
