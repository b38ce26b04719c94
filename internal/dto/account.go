package dto

import (
	"time"

	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the payload for creating a treasury or bank.
// AutoCredit defaults by kind when omitted: treasuries true, banks false.
type CreateAccountRequest struct {
	Name           string          `json:"name" binding:"required"`
	Kind           string          `json:"kind" binding:"required,oneof=TREASURY BANK"`
	HomeCurrencyID string          `json:"homeCurrencyID" binding:"required"`
	OpeningBalance decimal.Decimal `json:"openingBalance" binding:"dgte0"`
	AutoCredit     *bool           `json:"autoCredit"`
}

// UpdateAccountRequest defines the mutable account fields. Balances are never
// writable through the API.
type UpdateAccountRequest struct {
	Name       *string `json:"name"`
	AutoCredit *bool   `json:"autoCredit"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string          `json:"accountID"`
	Kind           string          `json:"kind"`
	Name           string          `json:"name"`
	HomeCurrencyID string          `json:"homeCurrencyID"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	AutoCredit     bool            `json:"autoCredit"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      a.AccountID,
		Kind:           string(a.Kind),
		Name:           a.Name,
		HomeCurrencyID: a.HomeCurrencyID,
		OpeningBalance: a.OpeningBalance,
		CurrentBalance: a.CurrentBalance,
		AutoCredit:     a.AutoCredit,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt,
	}
}

// ToAccountResponses converts a slice of domain.Account to []AccountResponse.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		responses[i] = ToAccountResponse(&a)
	}
	return responses
}

// BalanceVerificationResponse compares the live balance against a full ledger
// replay for one account.
type BalanceVerificationResponse struct {
	AccountID       string          `json:"accountID"`
	CurrentBalance  decimal.Decimal `json:"currentBalance"`
	ReplayedBalance decimal.Decimal `json:"replayedBalance"`
	Consistent      bool            `json:"consistent"`
}
