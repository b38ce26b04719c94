package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/magedShawky1972/transfigure-admin-sub004/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	currencyRepo := newPgxCurrencyRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	entryRepo := newPgxEntryRepository(dbPool, accountRepo)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	voidRepo := newPgxVoidRepository(dbPool, accountRepo)

	return portsrepo.RepositoryProvider{
		CurrencyRepo: currencyRepo,
		AccountRepo:  accountRepo,
		EntryRepo:    entryRepo,
		LedgerRepo:   ledgerRepo,
		VoidRepo:     voidRepo,
	}
}
