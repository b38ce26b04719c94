package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts, optionally filtered by kind.
	ListAccounts(ctx context.Context, kind *domain.AccountKind, limit int, offset int) ([]domain.Account, error)

	// SumOpeningBalances sums the opening balances of every account,
	// inactive ones included, mirroring the unfiltered ledger rows. Used by
	// the ledger report builder when no account filter is given.
	SumOpeningBalances(ctx context.Context) (decimal.Decimal, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details. The balance fields
	// are never written through this method; balances move only inside the
	// posting and void transactions.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountTransactionSupport defines operations used inside posting/void transactions
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks them for update
	// within a transaction. Locks are taken in ascending AccountID order so
	// two concurrent opposite-direction transfers cannot deadlock.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceChangesInTx applies signed balance deltas to the given
	// accounts within a transaction. Callers must hold row locks obtained via
	// FindAccountsByIDsForUpdate.
	ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
