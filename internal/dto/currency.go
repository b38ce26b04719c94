package dto

import (
	"time"

	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCurrencyRequest defines the payload for registering a currency.
type CreateCurrencyRequest struct {
	Code   string `json:"code" binding:"required,len=3,uppercase"`
	Name   string `json:"name" binding:"required"`
	Symbol string `json:"symbol"`
	IsBase bool   `json:"isBase"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyID string    `json:"currencyID"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Symbol     string    `json:"symbol"`
	IsBase     bool      `json:"isBase"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO.
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyID: c.CurrencyID,
		Code:       c.Code,
		Name:       c.Name,
		Symbol:     c.Symbol,
		IsBase:     c.IsBase,
		IsActive:   c.IsActive,
		CreatedAt:  c.CreatedAt,
	}
}

// ToCurrencyResponses converts a slice of domain.Currency to []CurrencyResponse.
func ToCurrencyResponses(currencies []domain.Currency) []CurrencyResponse {
	responses := make([]CurrencyResponse, len(currencies))
	for i, c := range currencies {
		responses[i] = ToCurrencyResponse(&c)
	}
	return responses
}

// UpsertRateRequest defines the payload for recording a new conversion rate.
// The previous rate is retained but never consulted again.
type UpsertRateRequest struct {
	CurrencyID string          `json:"currencyID" binding:"required"`
	RateToBase decimal.Decimal `json:"rateToBase" binding:"required,dgt0"`
	Operator   string          `json:"operator" binding:"required,oneof=MULTIPLY DIVIDE"`
}

// RateResponse defines the data returned for a conversion rate.
type RateResponse struct {
	RateID     string          `json:"rateID"`
	CurrencyID string          `json:"currencyID"`
	RateToBase decimal.Decimal `json:"rateToBase"`
	Operator   string          `json:"operator"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ToRateResponse converts a domain.CurrencyRate to RateResponse DTO.
func ToRateResponse(r *domain.CurrencyRate) RateResponse {
	return RateResponse{
		RateID:     r.RateID,
		CurrencyID: r.CurrencyID,
		RateToBase: r.RateToBase,
		Operator:   string(r.Operator),
		CreatedAt:  r.CreatedAt,
	}
}

// ConvertRequest defines the payload for an ad-hoc conversion.
type ConvertRequest struct {
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	FromCurrencyID string          `json:"fromCurrencyID" binding:"required"`
	ToCurrencyID   string          `json:"toCurrencyID" binding:"required"`
}

// ConvertResponse returns the converted amount rounded for display.
type ConvertResponse struct {
	Amount          decimal.Decimal `json:"amount"`
	FromCurrencyID  string          `json:"fromCurrencyID"`
	ToCurrencyID    string          `json:"toCurrencyID"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
}
