package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/apperrors"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	portsrepo "github.com/magedShawky1972/transfigure-admin-sub004/internal/core/ports/repositories"
	portssvc "github.com/magedShawky1972/transfigure-admin-sub004/internal/core/ports/services"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/dto"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/middleware"
)

// accountService provides business logic for treasuries and banks.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerReader
	currencySvc portssvc.CurrencySvcFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, ledgerRepo portsrepo.LedgerReader, currencySvc portssvc.CurrencySvcFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		currencySvc: currencySvc,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new treasury or bank. AutoCredit defaults by kind
// when the request leaves it unset: treasuries take part in automatic
// transfer crediting, banks are reconciled from statements instead.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	currency, err := s.currencySvc.GetCurrencyByID(ctx, req.HomeCurrencyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: home currency %s not found", apperrors.ErrValidation, req.HomeCurrencyID)
		}
		return nil, fmt.Errorf("failed to validate home currency: %w", err)
	}
	if !currency.IsActive {
		return nil, fmt.Errorf("%w: home currency %s is inactive", apperrors.ErrValidation, currency.Code)
	}

	kind := domain.AccountKind(req.Kind)
	autoCredit := kind == domain.Treasury
	if req.AutoCredit != nil {
		autoCredit = *req.AutoCredit
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		Kind:           kind,
		Name:           req.Name,
		HomeCurrencyID: req.HomeCurrencyID,
		OpeningBalance: req.OpeningBalance,
		CurrentBalance: req.OpeningBalance,
		AutoCredit:     autoCredit,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", "error", err, "name", req.Name)
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", "account_id", account.AccountID, "kind", account.Kind, "auto_credit", account.AutoCredit)
	return &account, nil
}

// GetAccountByID retrieves a specific account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts by their IDs.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	return accounts, nil
}

// ListAccounts retrieves a paginated list of accounts.
func (s *accountService) ListAccounts(ctx context.Context, kind *domain.AccountKind, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, kind, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount updates mutable account details. Balances are not writable.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.AutoCredit != nil {
		account.AutoCredit = *req.AutoCredit
		updated = true
	}
	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, fmt.Errorf("failed to update account %s: %w", accountID, err)
	}
	return account, nil
}

// DeactivateAccount marks an account as inactive. Posted history is retained;
// the account just stops accepting new entries.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	return nil
}

// VerifyBalance replays the full ledger for the account and compares the
// result with the live CurrentBalance field. Read-only check of the balance
// conservation invariant.
func (s *accountService) VerifyBalance(ctx context.Context, accountID string) (*dto.BalanceVerificationResponse, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	// Far-future cutoff covers every row ever posted.
	horizon := time.Now().UTC().AddDate(100, 0, 0)
	sum, err := s.ledgerRepo.SumRowsBefore(ctx, &accountID, horizon)
	if err != nil {
		return nil, fmt.Errorf("failed to replay ledger for account %s: %w", accountID, err)
	}

	replayed := account.OpeningBalance.Add(sum)
	return &dto.BalanceVerificationResponse{
		AccountID:       accountID,
		CurrentBalance:  account.CurrentBalance,
		ReplayedBalance: replayed,
		Consistent:      account.CurrentBalance.Equal(replayed),
	}, nil
}
