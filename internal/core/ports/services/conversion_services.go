package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// ConversionSvcFacade converts amounts between registered currencies via the
// base currency as pivot. Both methods are pure and non-blocking; nothing is
// mutated and no rounding is applied.
type ConversionSvcFacade interface {
	// Convert converts amount from one currency to another. When the two
	// currencies are equal the amount is returned unchanged with no rate
	// lookup. A missing rate for a non-base currency is a fatal
	// *apperrors.ConversionError, never a silent 1:1.
	Convert(ctx context.Context, amount decimal.Decimal, fromCurrencyID, toCurrencyID string) (decimal.Decimal, error)

	// ResolveRate returns the effective multiplier from one currency to
	// another, resolved against the latest rates. This is the value frozen
	// into an entry's ExchangeRate at posting time.
	ResolveRate(ctx context.Context, fromCurrencyID, toCurrencyID string) (decimal.Decimal, error)
}
