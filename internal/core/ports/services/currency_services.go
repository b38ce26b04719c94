package services

import (
	"context"

	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/dto"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByID retrieves a specific currency by its unique identifier.
	GetCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error)

	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// GetBaseCurrency retrieves the single active base currency.
	GetBaseCurrency(ctx context.Context) (*domain.Currency, error)

	// ListCurrencies retrieves all available currencies.
	ListCurrencies(ctx context.Context, includeInactive bool) ([]domain.Currency, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// CreateCurrency persists a new currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)

	// SetBaseCurrency makes the given currency the single active base.
	SetBaseCurrency(ctx context.Context, currencyID string, userID string) error

	// DeactivateCurrency marks a currency as inactive. The base currency
	// cannot be deactivated.
	DeactivateCurrency(ctx context.Context, currencyID string, userID string) error
}

// RateSvc defines operations for conversion rates
type RateSvc interface {
	// UpsertRate records a new latest rate for a currency.
	UpsertRate(ctx context.Context, req dto.UpsertRateRequest, creatorUserID string) (*domain.CurrencyRate, error)

	// GetLatestRate retrieves the latest rate for a currency.
	GetLatestRate(ctx context.Context, currencyID string) (*domain.CurrencyRate, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
	RateSvc
}
