package dto

import (
	"time"

	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	"github.com/shopspring/decimal"
)

// VoidEntryRequest carries the optional void reason.
type VoidEntryRequest struct {
	Reason string `json:"reason"`
}

// VoidResponse defines the data returned for a void record.
type VoidResponse struct {
	VoidID          string          `json:"voidID"`
	VoidNumber      string          `json:"voidNumber"`
	OriginalEntryID string          `json:"originalEntryID"`
	OriginalAmount  decimal.Decimal `json:"originalAmount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	AccountID       string          `json:"accountID"`
	VoidedAt        time.Time       `json:"voidedAt"`
	VoidedBy        string          `json:"voidedBy"`
	Reason          string          `json:"reason,omitempty"`
}

// ToVoidResponse converts a domain.VoidRecord to VoidResponse DTO.
func ToVoidResponse(v *domain.VoidRecord) VoidResponse {
	return VoidResponse{
		VoidID:          v.VoidID,
		VoidNumber:      v.VoidNumber,
		OriginalEntryID: v.OriginalEntryID,
		OriginalAmount:  v.OriginalAmount,
		ConvertedAmount: v.ConvertedAmount,
		AccountID:       v.AccountID,
		VoidedAt:        v.VoidedAt,
		VoidedBy:        v.VoidedBy,
		Reason:          v.Reason,
	}
}
