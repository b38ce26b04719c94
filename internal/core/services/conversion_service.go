package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/magedShawky1972/transfigure-admin-sub004/internal/apperrors"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	portsrepo "github.com/magedShawky1972/transfigure-admin-sub004/internal/core/ports/repositories"
	portssvc "github.com/magedShawky1972/transfigure-admin-sub004/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// conversionService converts amounts between currencies, pivoting through the
// single base currency. All arithmetic stays in full decimal precision;
// callers round once at the point of persistence.
type conversionService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewConversionService creates a new ConversionService.
func NewConversionService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.ConversionSvcFacade {
	return &conversionService{currencyRepo: currencyRepo}
}

var _ portssvc.ConversionSvcFacade = (*conversionService)(nil)

// toBase converts an amount expressed in the rate's currency into the base
// currency. The rate is quoted as currency units per base unit under
// Multiply, so going into base divides; Divide is the mirror image.
func toBase(amount decimal.Decimal, rate domain.CurrencyRate) (decimal.Decimal, error) {
	switch rate.Operator {
	case domain.Multiply:
		return amount.Div(rate.RateToBase), nil
	case domain.Divide:
		return amount.Mul(rate.RateToBase), nil
	default:
		return decimal.Zero, apperrors.NewConversionError(rate.CurrencyID, fmt.Sprintf("unknown rate operator '%s'", rate.Operator))
	}
}

// fromBase converts a base-currency amount into the rate's currency.
func fromBase(amount decimal.Decimal, rate domain.CurrencyRate) (decimal.Decimal, error) {
	switch rate.Operator {
	case domain.Multiply:
		return amount.Mul(rate.RateToBase), nil
	case domain.Divide:
		return amount.Div(rate.RateToBase), nil
	default:
		return decimal.Zero, apperrors.NewConversionError(rate.CurrencyID, fmt.Sprintf("unknown rate operator '%s'", rate.Operator))
	}
}

// rateFor resolves the latest rate for a non-base currency. A missing rate is
// fatal; conversion never silently degrades to 1:1.
func (s *conversionService) rateFor(ctx context.Context, currencyID string) (*domain.CurrencyRate, error) {
	rate, err := s.currencyRepo.FindLatestRate(ctx, currencyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewConversionError(currencyID, "no conversion rate registered")
		}
		return nil, fmt.Errorf("failed to resolve rate for currency %s: %w", currencyID, err)
	}
	if !rate.RateToBase.IsPositive() {
		return nil, apperrors.NewConversionError(currencyID, fmt.Sprintf("non-positive rate %s", rate.RateToBase))
	}
	return rate, nil
}

// Convert converts amount from one currency to another. The trivial case
// returns the amount unchanged without touching the registry, which also
// avoids any precision drift.
func (s *conversionService) Convert(ctx context.Context, amount decimal.Decimal, fromCurrencyID, toCurrencyID string) (decimal.Decimal, error) {
	if fromCurrencyID == toCurrencyID {
		return amount, nil
	}

	base, err := s.currencyRepo.FindBaseCurrency(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, apperrors.NewConversionError("", "no active base currency configured")
		}
		if errors.Is(err, apperrors.ErrConflict) {
			return decimal.Zero, apperrors.NewConversionError("", "more than one active base currency")
		}
		return decimal.Zero, fmt.Errorf("failed to resolve base currency: %w", err)
	}

	baseAmount := amount
	if fromCurrencyID != base.CurrencyID {
		rate, err := s.rateFor(ctx, fromCurrencyID)
		if err != nil {
			return decimal.Zero, err
		}
		baseAmount, err = toBase(amount, *rate)
		if err != nil {
			return decimal.Zero, err
		}
	}

	if toCurrencyID == base.CurrencyID {
		return baseAmount, nil
	}

	rate, err := s.rateFor(ctx, toCurrencyID)
	if err != nil {
		return decimal.Zero, err
	}
	return fromBase(baseAmount, *rate)
}

// ResolveRate returns the effective multiplier from one currency to another.
// Conversion is linear, so the multiplier is the image of 1.
func (s *conversionService) ResolveRate(ctx context.Context, fromCurrencyID, toCurrencyID string) (decimal.Decimal, error) {
	if fromCurrencyID == toCurrencyID {
		return decimal.NewFromInt(1), nil
	}
	return s.Convert(ctx, decimal.NewFromInt(1), fromCurrencyID, toCurrencyID)
}
