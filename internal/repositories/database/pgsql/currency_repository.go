package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/apperrors"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	portsrepo "github.com/magedShawky1972/transfigure-admin-sub004/internal/core/ports/repositories"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/models"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/utils/mapping"
)

const uniqueViolationCode = "23505"

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency and rate data.
func newPgxCurrencyRepository(pool *pgxpool.Pool) portsrepo.CurrencyRepositoryFacade {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

const currencyColumns = `currency_id, code, name, symbol, is_base, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanCurrency(row pgx.Row) (models.Currency, error) {
	var m models.Currency
	err := row.Scan(
		&m.CurrencyID,
		&m.Code,
		&m.Name,
		&m.Symbol,
		&m.IsBase,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCurrency inserts a new currency.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	m := mapping.ToModelCurrency(currency)

	query := `
		INSERT INTO currencies (` + currencyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CurrencyID,
		m.Code,
		m.Name,
		m.Symbol,
		m.IsBase,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: currency code %s", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save currency %s: %w", m.Code, err)
	}
	return nil
}

// FindCurrencyByID retrieves a currency by its ID.
func (r *PgxCurrencyRepository) FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE currency_id = $1;`

	m, err := scanCurrency(r.Pool.QueryRow(ctx, query, currencyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency %s: %w", currencyID, err)
	}

	d := mapping.ToDomainCurrency(m)
	return &d, nil
}

// FindCurrencyByCode retrieves a currency by its 3-letter code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE code = $1;`

	m, err := scanCurrency(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency by code %s: %w", code, err)
	}

	d := mapping.ToDomainCurrency(m)
	return &d, nil
}

// FindBaseCurrency retrieves the single active base currency. A schema-level
// partial unique index keeps at most one row with is_base, but the count is
// still verified so a broken registry surfaces as ErrConflict instead of a
// silently wrong conversion.
func (r *PgxCurrencyRepository) FindBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE is_base AND is_active;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query base currency: %w", err)
	}
	defer rows.Close()

	var found []models.Currency
	for rows.Next() {
		m, err := scanCurrency(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan base currency row: %w", err)
		}
		found = append(found, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating base currency rows: %w", err)
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: no active base currency configured", apperrors.ErrNotFound)
	case 1:
		d := mapping.ToDomainCurrency(found[0])
		return &d, nil
	default:
		return nil, fmt.Errorf("%w: %d currencies are flagged as base", apperrors.ErrConflict, len(found))
	}
}

// ListCurrencies retrieves all currencies, optionally including inactive ones.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context, includeInactive bool) ([]domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies`
	if !includeInactive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	modelCurrencies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Currency, error) {
		return scanCurrency(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan currencies: %w", err)
	}

	currencies := make([]domain.Currency, len(modelCurrencies))
	for i, m := range modelCurrencies {
		currencies[i] = mapping.ToDomainCurrency(m)
	}
	return currencies, nil
}

// SetBaseCurrency atomically moves the base flag to the given currency.
func (r *PgxCurrencyRepository) SetBaseCurrency(ctx context.Context, currencyID string, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		UPDATE currencies
		SET is_base = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE is_base;
	`, now, userID)
	if err != nil {
		return fmt.Errorf("failed to clear base flag: %w", err)
	}

	ct, err := tx.Exec(ctx, `
		UPDATE currencies
		SET is_base = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE currency_id = $1 AND is_active;
	`, currencyID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to set base flag on %s: %w", currencyID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: active currency %s", apperrors.ErrNotFound, currencyID)
	}

	return r.Commit(ctx, tx)
}

// DeactivateCurrency marks a currency as inactive.
func (r *PgxCurrencyRepository) DeactivateCurrency(ctx context.Context, currencyID string, userID string, now time.Time) error {
	ct, err := r.Pool.Exec(ctx, `
		UPDATE currencies
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE currency_id = $1;
	`, currencyID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate currency %s: %w", currencyID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: currency %s", apperrors.ErrNotFound, currencyID)
	}
	return nil
}

const rateColumns = `rate_id, currency_id, rate_to_base, operator, created_at, created_by, last_updated_at, last_updated_by`

func scanRate(row pgx.Row) (models.CurrencyRate, error) {
	var m models.CurrencyRate
	err := row.Scan(
		&m.RateID,
		&m.CurrencyID,
		&m.RateToBase,
		&m.Operator,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveRate appends a new rate row. Older rates stay for audit but are never
// consulted again.
func (r *PgxCurrencyRepository) SaveRate(ctx context.Context, rate domain.CurrencyRate) error {
	m := mapping.ToModelCurrencyRate(rate)

	query := `
		INSERT INTO currency_rates (` + rateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RateID,
		m.CurrencyID,
		m.RateToBase,
		m.Operator,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save rate for currency %s: %w", m.CurrencyID, err)
	}
	return nil
}

// FindLatestRate retrieves the most recently created rate for a currency.
func (r *PgxCurrencyRepository) FindLatestRate(ctx context.Context, currencyID string) (*domain.CurrencyRate, error) {
	query := `
		SELECT ` + rateColumns + `
		FROM currency_rates
		WHERE currency_id = $1
		ORDER BY created_at DESC, rate_id DESC
		LIMIT 1;
	`
	m, err := scanRate(r.Pool.QueryRow(ctx, query, currencyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest rate for currency %s: %w", currencyID, err)
	}

	d := mapping.ToDomainCurrencyRate(m)
	return &d, nil
}

// ListLatestRates retrieves the latest rate per currency.
func (r *PgxCurrencyRepository) ListLatestRates(ctx context.Context) ([]domain.CurrencyRate, error) {
	query := `
		SELECT DISTINCT ON (currency_id) ` + rateColumns + `
		FROM currency_rates
		ORDER BY currency_id, created_at DESC, rate_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest rates: %w", err)
	}
	defer rows.Close()

	modelRates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CurrencyRate, error) {
		return scanRate(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan rates: %w", err)
	}

	rates := make([]domain.CurrencyRate, len(modelRates))
	for i, m := range modelRates {
		rates[i] = mapping.ToDomainCurrencyRate(m)
	}
	return rates, nil
}
