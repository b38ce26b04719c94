package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/apperrors"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	portsrepo "github.com/magedShawky1972/transfigure-admin-sub004/internal/core/ports/repositories"
	portssvc "github.com/magedShawky1972/transfigure-admin-sub004/internal/core/ports/services"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/dto"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/middleware"
	"github.com/shopspring/decimal"
)

// currencyService provides business logic for the currency registry.
type currencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// CreateCurrency registers a new currency. When IsBase is requested the base
// flag is swapped atomically so the single-base invariant holds throughout.
func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	code := strings.ToUpper(req.Code)
	if len(code) != 3 {
		return nil, fmt.Errorf("%w: currency code must be 3 letters", apperrors.ErrValidation)
	}

	if existing, err := s.currencyRepo.FindCurrencyByCode(ctx, code); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: currency code %s", apperrors.ErrDuplicate, code)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing currency %s: %w", code, err)
	}

	now := time.Now().UTC()
	currency := domain.Currency{
		CurrencyID: uuid.NewString(),
		Code:       code,
		Name:       req.Name,
		Symbol:     req.Symbol,
		IsBase:     false,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		logger.Error("Failed to save currency", "error", err, "code", code)
		return nil, fmt.Errorf("failed to save currency: %w", err)
	}

	if req.IsBase {
		if err := s.currencyRepo.SetBaseCurrency(ctx, currency.CurrencyID, creatorUserID, now); err != nil {
			logger.Error("Failed to set base currency", "error", err, "currency_id", currency.CurrencyID)
			return nil, fmt.Errorf("failed to set base currency: %w", err)
		}
		currency.IsBase = true
	}

	logger.Info("Currency created", "currency_id", currency.CurrencyID, "code", code, "is_base", currency.IsBase)
	return &currency, nil
}

// GetCurrencyByID retrieves a currency by its unique identifier.
func (s *currencyService) GetCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find currency %s: %w", currencyID, err)
	}
	return currency, nil
}

// GetCurrencyByCode retrieves a currency by its code.
func (s *currencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(code))
	if err != nil {
		return nil, fmt.Errorf("failed to find currency by code %s: %w", code, err)
	}
	return currency, nil
}

// GetBaseCurrency retrieves the single active base currency.
func (s *currencyService) GetBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	base, err := s.currencyRepo.FindBaseCurrency(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base currency: %w", err)
	}
	return base, nil
}

// ListCurrencies retrieves all currencies.
func (s *currencyService) ListCurrencies(ctx context.Context, includeInactive bool) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	return currencies, nil
}

// SetBaseCurrency makes the given currency the single active base.
func (s *currencyService) SetBaseCurrency(ctx context.Context, currencyID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		return fmt.Errorf("failed to find currency %s: %w", currencyID, err)
	}
	if !currency.IsActive {
		return fmt.Errorf("%w: inactive currency %s cannot be the base", apperrors.ErrValidation, currency.Code)
	}

	if err := s.currencyRepo.SetBaseCurrency(ctx, currencyID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to set base currency", "error", err, "currency_id", currencyID)
		return fmt.Errorf("failed to set base currency: %w", err)
	}

	logger.Info("Base currency changed", "currency_id", currencyID, "code", currency.Code)
	return nil
}

// DeactivateCurrency marks a currency as inactive. The base currency cannot
// be deactivated, otherwise every conversion would start failing at once.
func (s *currencyService) DeactivateCurrency(ctx context.Context, currencyID string, userID string) error {
	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		return fmt.Errorf("failed to find currency %s: %w", currencyID, err)
	}
	if currency.IsBase {
		return fmt.Errorf("%w: the base currency cannot be deactivated", apperrors.ErrValidation)
	}

	if err := s.currencyRepo.DeactivateCurrency(ctx, currencyID, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to deactivate currency %s: %w", currencyID, err)
	}
	return nil
}

// UpsertRate records a new latest rate for a currency. Older rates are kept
// for audit but never consulted again.
func (s *currencyService) UpsertRate(ctx context.Context, req dto.UpsertRateRequest, creatorUserID string) (*domain.CurrencyRate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.RateToBase.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: rate must be positive", apperrors.ErrValidation)
	}

	currency, err := s.currencyRepo.FindCurrencyByID(ctx, req.CurrencyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency %s not found", apperrors.ErrValidation, req.CurrencyID)
		}
		return nil, fmt.Errorf("failed to validate currency %s: %w", req.CurrencyID, err)
	}
	if currency.IsBase {
		return nil, fmt.Errorf("%w: the base currency has an implicit rate of 1", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	rate := domain.CurrencyRate{
		RateID:     uuid.NewString(),
		CurrencyID: req.CurrencyID,
		RateToBase: req.RateToBase,
		Operator:   domain.RateOperator(req.Operator),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveRate(ctx, rate); err != nil {
		logger.Error("Failed to save rate", "error", err, "currency_id", req.CurrencyID)
		return nil, fmt.Errorf("failed to save rate: %w", err)
	}

	logger.Info("Rate recorded", "currency_id", req.CurrencyID, "rate", req.RateToBase.String(), "operator", req.Operator)
	return &rate, nil
}

// GetLatestRate retrieves the latest rate for a currency.
func (s *currencyService) GetLatestRate(ctx context.Context, currencyID string) (*domain.CurrencyRate, error) {
	rate, err := s.currencyRepo.FindLatestRate(ctx, currencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find latest rate for currency %s: %w", currencyID, err)
	}
	return rate, nil
}
