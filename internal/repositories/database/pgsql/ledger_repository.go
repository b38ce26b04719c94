package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	portsrepo "github.com/magedShawky1972/transfigure-admin-sub004/internal/core/ports/repositories"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/models"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a read-only repository over ledger rows.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerReader {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.LedgerReader = (*PgxLedgerRepository)(nil)

const ledgerRowColumns = `r.row_id, r.entry_id, r.entry_number, r.account_id, r.entry_date, r.entry_type, r.direction, r.amount, r.created_at`

func scanLedgerRow(row pgx.Row) (models.LedgerRow, error) {
	var m models.LedgerRow
	err := row.Scan(
		&m.RowID,
		&m.EntryID,
		&m.EntryNumber,
		&m.AccountID,
		&m.EntryDate,
		&m.EntryType,
		&m.Direction,
		&m.Amount,
		&m.CreatedAt,
	)
	return m, err
}

// SumRowsBefore sums signed row amounts dated strictly before the given date.
// Joining on the entry status keeps voided entries out of the sum, which is
// what makes replay reconcile with the live balances.
func (r *PgxLedgerRepository) SumRowsBefore(ctx context.Context, accountID *string, before time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(r.amount), 0)
		FROM ledger_rows r
		JOIN entries e ON e.entry_id = r.entry_id
		WHERE e.status = $1 AND r.entry_date < $2
	`
	args := []any{string(domain.Posted), before}
	if accountID != nil {
		query += ` AND r.account_id = $3`
		args = append(args, *accountID)
	}
	query += `;`

	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum ledger rows: %w", err)
	}
	return sum, nil
}

// ListRowsBetween retrieves non-voided rows within [from, to] in ascending
// date order.
func (r *PgxLedgerRepository) ListRowsBetween(ctx context.Context, accountID *string, from, to time.Time) ([]domain.LedgerRow, error) {
	query := `
		SELECT ` + ledgerRowColumns + `
		FROM ledger_rows r
		JOIN entries e ON e.entry_id = r.entry_id
		WHERE e.status = $1 AND r.entry_date >= $2 AND r.entry_date <= $3
	`
	args := []any{string(domain.Posted), from, to}
	if accountID != nil {
		query += ` AND r.account_id = $4`
		args = append(args, *accountID)
	}
	query += ` ORDER BY r.entry_date, r.created_at, r.row_id;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger rows: %w", err)
	}
	defer rows.Close()

	modelRows, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.LedgerRow, error) {
		return scanLedgerRow(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan ledger rows: %w", err)
	}

	result := make([]domain.LedgerRow, len(modelRows))
	for i, m := range modelRows {
		result[i] = mapping.ToDomainLedgerRow(m)
	}
	return result, nil
}

// ListRowsByEntryID retrieves the rows appended when the entry posted,
// regardless of the entry's current status. The void engine reads these to
// compute the exact inverse.
func (r *PgxLedgerRepository) ListRowsByEntryID(ctx context.Context, entryID string) ([]domain.LedgerRow, error) {
	query := `
		SELECT ` + ledgerRowColumns + `
		FROM ledger_rows r
		WHERE r.entry_id = $1
		ORDER BY r.created_at, r.row_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rows for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	modelRows, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.LedgerRow, error) {
		return scanLedgerRow(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan rows for entry %s: %w", entryID, err)
	}

	result := make([]domain.LedgerRow, len(modelRows))
	for i, m := range modelRows {
		result[i] = mapping.ToDomainLedgerRow(m)
	}
	return result, nil
}
