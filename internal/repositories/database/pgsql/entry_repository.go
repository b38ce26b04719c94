package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/apperrors"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	portsrepo "github.com/magedShawky1972/transfigure-admin-sub004/internal/core/ports/repositories"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/models"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/utils/mapping"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

type PgxEntryRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxEntryRepository creates a new repository for entry data. The account
// repository is injected for the in-transaction lock and balance helpers.
func newPgxEntryRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure implementation matches interface
var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

const entryColumns = `entry_id, entry_number, account_id, entry_date, type, amount, source_currency_id,
	exchange_rate, converted_amount, bank_charges, other_charges, status, balance_before, balance_after,
	transfer_type, to_account_id, to_currency_id, linked_request_id,
	approved_by, approved_at, posted_by, posted_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (models.Entry, error) {
	var m models.Entry
	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.AccountID,
		&m.EntryDate,
		&m.Type,
		&m.Amount,
		&m.SourceCurrencyID,
		&m.ExchangeRate,
		&m.ConvertedAmount,
		&m.BankCharges,
		&m.OtherCharges,
		&m.Status,
		&m.BalanceBefore,
		&m.BalanceAfter,
		&m.TransferType,
		&m.ToAccountID,
		&m.ToCurrencyID,
		&m.LinkedRequestID,
		&m.ApprovedBy,
		&m.ApprovedAt,
		&m.PostedBy,
		&m.PostedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveEntry persists a new draft entry.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.Entry) error {
	m := mapping.ToModelEntry(entry)

	query := `
		INSERT INTO entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EntryID, m.EntryNumber, m.AccountID, m.EntryDate, m.Type, m.Amount, m.SourceCurrencyID,
		m.ExchangeRate, m.ConvertedAmount, m.BankCharges, m.OtherCharges, m.Status, m.BalanceBefore, m.BalanceAfter,
		m.TransferType, m.ToAccountID, m.ToCurrencyID, m.LinkedRequestID,
		m.ApprovedBy, m.ApprovedAt, m.PostedBy, m.PostedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry %s: %w", m.EntryID, err)
	}
	return nil
}

// FindEntryByID retrieves an entry by its ID.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}

	d := mapping.ToDomainEntry(m)
	return &d, nil
}

// ListEntries retrieves a token-paginated page of entries, newest first.
func (r *PgxEntryRepository) ListEntries(ctx context.Context, accountID *string, status *domain.EntryStatus, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE 1=1`
	args := []any{}
	argPos := 1

	if accountID != nil {
		query += fmt.Sprintf(" AND (account_id = $%d OR to_account_id = $%d)", argPos, argPos)
		args = append(args, *accountID)
		argPos++
	}
	if status != nil {
		query += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, string(*status))
		argPos++
	}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
		query += fmt.Sprintf(" AND (entry_date, created_at) < ($%d, $%d)", argPos, argPos+1)
		args = append(args, lastDate, lastCreatedAt)
		argPos += 2
	}

	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(" ORDER BY entry_date DESC, created_at DESC LIMIT $%d;", argPos)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	modelEntries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Entry, error) {
		return scanEntry(row)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan entries: %w", err)
	}

	var newToken *string
	if len(modelEntries) > limit {
		modelEntries = modelEntries[:limit]
		last := modelEntries[len(modelEntries)-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		newToken = &token
	}

	entries := make([]domain.Entry, len(modelEntries))
	for i, m := range modelEntries {
		entries[i] = mapping.ToDomainEntry(m)
	}
	return entries, newToken, nil
}

// UpdateEntryStatus conditionally moves an entry between non-posting states.
func (r *PgxEntryRepository) UpdateEntryStatus(ctx context.Context, entryID string, from, to domain.EntryStatus, userID string, now time.Time) error {
	ct, err := r.Pool.Exec(ctx, `
		UPDATE entries
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1 AND status = $2;
	`, entryID, string(from), string(to), now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status of entry %s: %w", entryID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s is no longer %s", apperrors.ErrConflict, entryID, from)
	}
	return nil
}

// MarkApproved stamps the approver and moves the entry to APPROVED.
func (r *PgxEntryRepository) MarkApproved(ctx context.Context, entryID string, approverID string, now time.Time) error {
	ct, err := r.Pool.Exec(ctx, `
		UPDATE entries
		SET status = $2, approved_by = $3, approved_at = $4, last_updated_at = $4, last_updated_by = $3
		WHERE entry_id = $1 AND status = $5;
	`, entryID, string(domain.Approved), approverID, now, string(domain.PendingApproval))
	if err != nil {
		return fmt.Errorf("failed to approve entry %s: %w", entryID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s is no longer pending approval", apperrors.ErrConflict, entryID)
	}
	return nil
}

// NextEntryNumber reserves the next value of the entry number sequence.
// Sequence values survive rollbacks, so gaps are possible but reuse is not.
func (r *PgxEntryRepository) NextEntryNumber(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.Pool.QueryRow(ctx, `SELECT nextval('entry_number_seq');`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("failed to reserve entry number: %w", err)
	}
	return seq, nil
}

// PostEntry atomically posts an approved entry: accounts are locked in
// ascending ID order, balances verified and mutated, the entry stamped
// POSTED with its conversion snapshot, and the ledger rows appended. Either
// everything commits or nothing does.
func (r *PgxEntryRepository) PostEntry(ctx context.Context, entry domain.Entry, ledgerRows []domain.LedgerRow, changes map[string]decimal.Decimal) (*portsrepo.PostingResult, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	now := entry.LastUpdatedAt
	userID := entry.LastUpdatedBy

	// 1. Lock every affected account.
	accountIDs := make([]string, 0, len(changes))
	for accID := range changes {
		accountIDs = append(accountIDs, accID)
	}
	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts for posting: %w", err)
	}

	// 2. Verify under lock that no resulting balance goes negative.
	for accID, delta := range changes {
		locked := lockedAccounts[accID]
		if locked.CurrentBalance.Add(delta).IsNegative() {
			return nil, &apperrors.InsufficientBalanceError{
				AccountID: accID,
				Required:  delta.Neg(),
				Available: locked.CurrentBalance,
			}
		}
	}

	sourceBefore := lockedAccounts[entry.AccountID].CurrentBalance
	sourceAfter := sourceBefore.Add(changes[entry.AccountID])

	// 3. Apply the balance deltas.
	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, changes, userID, now); err != nil {
		return nil, fmt.Errorf("failed to apply balance changes: %w", err)
	}

	// 4. Stamp the entry POSTED with its frozen conversion and the snapshot.
	// Conditioned on APPROVED so a concurrent post loses cleanly.
	ct, err := tx.Exec(ctx, `
		UPDATE entries
		SET status = $2, exchange_rate = $3, converted_amount = $4,
			balance_before = $5, balance_after = $6,
			posted_by = $7, posted_at = $8, last_updated_at = $8, last_updated_by = $7
		WHERE entry_id = $1 AND status = $9;
	`, entry.EntryID, string(domain.Posted), entry.ExchangeRate, entry.ConvertedAmount,
		sourceBefore, sourceAfter, userID, now, string(domain.Approved))
	if err != nil {
		return nil, fmt.Errorf("failed to stamp entry %s posted: %w", entry.EntryID, err)
	}
	if ct.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: entry %s is no longer approved", apperrors.ErrConflict, entry.EntryID)
	}

	// 5. Append the ledger rows.
	batch := &pgx.Batch{}
	rowQuery := `
		INSERT INTO ledger_rows (row_id, entry_id, entry_number, account_id, entry_date, entry_type, direction, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, row := range ledgerRows {
		m := mapping.ToModelLedgerRow(row)
		batch.Queue(rowQuery,
			m.RowID, m.EntryID, m.EntryNumber, m.AccountID,
			m.EntryDate, m.EntryType, m.Direction, m.Amount, m.CreatedAt,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("failed to insert ledger rows for entry %s: %w", entry.EntryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &portsrepo.PostingResult{
		BalanceBefore: sourceBefore,
		BalanceAfter:  sourceAfter,
	}, nil
}
