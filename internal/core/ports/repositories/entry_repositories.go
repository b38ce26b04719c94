package repositories

import (
	"context"
	"time"

	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostingResult carries the balance snapshot taken under lock while posting.
type PostingResult struct {
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
}

// EntryReader defines read operations for entries
type EntryReader interface {
	// FindEntryByID retrieves a specific entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error)

	// ListEntries retrieves a token-paginated list of entries, newest first,
	// optionally filtered by account and status.
	ListEntries(ctx context.Context, accountID *string, status *domain.EntryStatus, limit int, nextToken *string) ([]domain.Entry, *string, error)
}

// EntryWriter defines write operations for entries outside the posting transaction
type EntryWriter interface {
	// SaveEntry persists a new draft entry.
	SaveEntry(ctx context.Context, entry domain.Entry) error

	// UpdateEntryStatus moves an entry between non-posting states. The write
	// is conditioned on the expected current status; apperrors.ErrConflict is
	// returned when the entry moved underneath the caller.
	UpdateEntryStatus(ctx context.Context, entryID string, from, to domain.EntryStatus, userID string, now time.Time) error

	// MarkApproved stamps the approver and moves the entry from
	// PENDING_APPROVAL to APPROVED. Returns apperrors.ErrConflict when the
	// entry is no longer pending.
	MarkApproved(ctx context.Context, entryID string, approverID string, now time.Time) error

	// NextEntryNumber reserves the next value of the entry number sequence.
	NextEntryNumber(ctx context.Context) (int64, error)
}

// EntryPoster executes the posting transaction.
type EntryPoster interface {
	// PostEntry atomically: locks every affected account in ascending ID
	// order, verifies no resulting balance goes negative, applies the balance
	// changes, stamps the entry POSTED with its frozen conversion fields and
	// the balance snapshot, and appends the ledger rows. Either everything
	// commits or nothing does.
	//
	// The entry passed in must already carry ExchangeRate, ConvertedAmount
	// and PostedBy/PostedAt; BalanceBefore/BalanceAfter are computed under
	// lock and returned.
	PostEntry(ctx context.Context, entry domain.Entry, rows []domain.LedgerRow, changes map[string]decimal.Decimal) (*PostingResult, error)
}

// EntryRepositoryFacade combines all entry-related repository interfaces
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
	EntryPoster
}

// LedgerReader defines read operations for ledger rows
type LedgerReader interface {
	// SumRowsBefore sums the signed row amounts dated strictly before the
	// given date, skipping rows whose entry has been voided.
	SumRowsBefore(ctx context.Context, accountID *string, before time.Time) (decimal.Decimal, error)

	// ListRowsBetween retrieves rows within [from, to] in ascending date
	// order, skipping rows whose entry has been voided.
	ListRowsBetween(ctx context.Context, accountID *string, from, to time.Time) ([]domain.LedgerRow, error)

	// ListRowsByEntryID retrieves the rows appended when the entry posted,
	// regardless of the entry's current status.
	ListRowsByEntryID(ctx context.Context, entryID string) ([]domain.LedgerRow, error)
}

// VoidWriter executes the void transaction and reads void records.
type VoidWriter interface {
	// VoidEntry atomically: locks the affected accounts, applies the inverse
	// balance changes, inserts the void record, and flips the entry status
	// from POSTED to VOIDED. A concurrent void loses the status write and
	// surfaces as apperrors.ErrAlreadyVoided.
	VoidEntry(ctx context.Context, record domain.VoidRecord, changes map[string]decimal.Decimal, userID string) error

	// FindVoidByEntryID retrieves the void record for an entry, if any.
	FindVoidByEntryID(ctx context.Context, entryID string) (*domain.VoidRecord, error)

	// NextVoidNumber reserves the next value of the void number sequence.
	NextVoidNumber(ctx context.Context) (int64, error)
}

// VoidRepositoryFacade combines void-related repository interfaces
type VoidRepositoryFacade interface {
	VoidWriter
}
