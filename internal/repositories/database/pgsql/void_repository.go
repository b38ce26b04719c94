package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/apperrors"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	portsrepo "github.com/magedShawky1972/transfigure-admin-sub004/internal/core/ports/repositories"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/models"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type PgxVoidRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxVoidRepository creates a new repository for void records.
func newPgxVoidRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.VoidRepositoryFacade {
	return &PgxVoidRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure implementation matches interface
var _ portsrepo.VoidRepositoryFacade = (*PgxVoidRepository)(nil)

const voidColumns = `void_id, void_number, original_entry_id, original_amount, converted_amount, account_id, voided_at, voided_by, reason`

// VoidEntry atomically reverses a posted entry: locks the affected accounts,
// applies the inverse deltas, inserts the void record and flips the entry
// POSTED to VOIDED. The conditional status flip makes a concurrent void lose
// with ErrAlreadyVoided and roll its balance writes back.
func (r *PgxVoidRepository) VoidEntry(ctx context.Context, record domain.VoidRecord, changes map[string]decimal.Decimal, userID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := record.VoidedAt

	accountIDs := make([]string, 0, len(changes))
	for accID := range changes {
		accountIDs = append(accountIDs, accID)
	}
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return fmt.Errorf("failed to lock accounts for void: %w", err)
	}

	ct, err := tx.Exec(ctx, `
		UPDATE entries
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1 AND status = $5;
	`, record.OriginalEntryID, string(domain.Voided), now, userID, string(domain.Posted))
	if err != nil {
		return fmt.Errorf("failed to flip entry %s to voided: %w", record.OriginalEntryID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyVoided, record.OriginalEntryID)
	}

	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, changes, userID, now); err != nil {
		return fmt.Errorf("failed to apply inverse balance changes: %w", err)
	}

	m := mapping.ToModelVoidRecord(record)
	_, err = tx.Exec(ctx, `
		INSERT INTO void_records (`+voidColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`, m.VoidID, m.VoidNumber, m.OriginalEntryID, m.OriginalAmount, m.ConvertedAmount,
		m.AccountID, m.VoidedAt, m.VoidedBy, m.Reason)
	if err != nil {
		return fmt.Errorf("failed to insert void record %s: %w", m.VoidID, err)
	}

	return r.Commit(ctx, tx)
}

// FindVoidByEntryID retrieves the void record for an entry, if any.
func (r *PgxVoidRepository) FindVoidByEntryID(ctx context.Context, entryID string) (*domain.VoidRecord, error) {
	query := `SELECT ` + voidColumns + ` FROM void_records WHERE original_entry_id = $1;`

	var m models.VoidRecord
	err := r.Pool.QueryRow(ctx, query, entryID).Scan(
		&m.VoidID,
		&m.VoidNumber,
		&m.OriginalEntryID,
		&m.OriginalAmount,
		&m.ConvertedAmount,
		&m.AccountID,
		&m.VoidedAt,
		&m.VoidedBy,
		&m.Reason,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find void record for entry %s: %w", entryID, err)
	}

	d := mapping.ToDomainVoidRecord(m)
	return &d, nil
}

// NextVoidNumber reserves the next value of the void number sequence.
func (r *PgxVoidRepository) NextVoidNumber(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.Pool.QueryRow(ctx, `SELECT nextval('void_number_seq');`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("failed to reserve void number: %w", err)
	}
	return seq, nil
}
