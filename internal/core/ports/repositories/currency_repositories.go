package repositories

import (
	"context"
	"time"

	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
)

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// FindCurrencyByID retrieves a specific currency by its unique identifier.
	FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error)

	// FindCurrencyByCode retrieves a specific currency by its code.
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// FindBaseCurrency retrieves the single active base currency.
	// Returns apperrors.ErrNotFound when no active base exists and
	// apperrors.ErrConflict when more than one does.
	FindBaseCurrency(ctx context.Context) (*domain.Currency, error)

	// ListCurrencies retrieves all currencies, optionally including inactive ones.
	ListCurrencies(ctx context.Context, includeInactive bool) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for currency data
type CurrencyWriter interface {
	// SaveCurrency persists a new currency.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// SetBaseCurrency atomically clears the base flag from every currency and
	// sets it on the given one.
	SetBaseCurrency(ctx context.Context, currencyID string, userID string, now time.Time) error

	// DeactivateCurrency marks a currency as inactive.
	DeactivateCurrency(ctx context.Context, currencyID string, userID string, now time.Time) error
}

// RateReader defines read operations for conversion rates
type RateReader interface {
	// FindLatestRate retrieves the latest rate for a currency.
	FindLatestRate(ctx context.Context, currencyID string) (*domain.CurrencyRate, error)

	// ListLatestRates retrieves the latest rate per currency.
	ListLatestRates(ctx context.Context) ([]domain.CurrencyRate, error)
}

// RateWriter defines write operations for conversion rates
type RateWriter interface {
	// SaveRate persists a new rate. Older rates for the same currency are kept
	// but never consulted again (latest rate wins).
	SaveRate(ctx context.Context, rate domain.CurrencyRate) error
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
	RateReader
	RateWriter
}
