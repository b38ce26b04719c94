package services

import (
	"context"
	"time"

	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/dto"
)

// EntryReaderSvc defines read operations for entries
type EntryReaderSvc interface {
	// GetEntryByID retrieves a specific entry by its unique identifier.
	GetEntryByID(ctx context.Context, entryID string) (*domain.Entry, error)

	// ListEntries retrieves a token-paginated list of entries.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// EntryLifecycleSvc drives the approval state machine.
type EntryLifecycleSvc interface {
	// CreateDraft validates and persists a new draft entry, assigning its
	// immutable entry number.
	CreateDraft(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.Entry, error)

	// SubmitEntry moves a draft to pending approval.
	SubmitEntry(ctx context.Context, entryID string, actorID string) (*domain.Entry, error)

	// ApproveEntry moves a pending entry to approved; requires the approve
	// capability and records approver plus timestamp.
	ApproveEntry(ctx context.Context, entryID string, actorID string) (*domain.Entry, error)

	// RejectEntry terminally rejects a draft or pending entry. No balance effect.
	RejectEntry(ctx context.Context, entryID string, actorID string, reason string) (*domain.Entry, error)

	// PostEntry posts an approved entry: resolves the conversion, mutates the
	// account balance exactly once inside a single transaction, and appends
	// the ledger rows. Requires the post capability.
	PostEntry(ctx context.Context, entryID string, actorID string) (*domain.Entry, error)
}

// EntrySvcFacade combines all entry-related service interfaces
type EntrySvcFacade interface {
	EntryReaderSvc
	EntryLifecycleSvc
}

// LedgerSvcFacade reconstructs running-balance statements from ledger rows.
type LedgerSvcFacade interface {
	// BuildLedger replays posted ledger rows between the given dates,
	// optionally filtered to a single account. Pure read; never mutates.
	BuildLedger(ctx context.Context, accountID *string, dateFrom, dateTo time.Time) (*domain.LedgerReport, error)
}

// VoidSvcFacade reverses exactly one posted entry.
type VoidSvcFacade interface {
	// VoidEntry atomically reverses a posted entry's balance effect, writes
	// the immutable void record, reopens any linked upstream request, and
	// marks the entry voided. Voiding an already voided entry fails with
	// apperrors.ErrAlreadyVoided.
	VoidEntry(ctx context.Context, entryID string, actorID string, reason string) (*domain.VoidRecord, error)
}
