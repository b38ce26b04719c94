package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/apperrors"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	portsrepo "github.com/magedShawky1972/transfigure-admin-sub004/internal/core/ports/repositories"
	portssvc "github.com/magedShawky1972/transfigure-admin-sub004/internal/core/ports/services"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/middleware"
	"github.com/shopspring/decimal"
)

// voidService reverses posted entries. The inverse effect is computed from
// the ledger rows the posting actually wrote, so the undo is exact even when
// account flags changed after the original posting.
type voidService struct {
	voidRepo   portsrepo.VoidRepositoryFacade
	entryRepo  portsrepo.EntryReader
	ledgerRepo portsrepo.LedgerReader
	capability portssvc.CapabilityChecker
	emitter    portssvc.EventEmitter
	reopenHook portssvc.ReopenHook
}

// NewVoidService creates a new VoidService. reopenHook may be nil when no
// upstream request system is attached.
func NewVoidService(
	voidRepo portsrepo.VoidRepositoryFacade,
	entryRepo portsrepo.EntryReader,
	ledgerRepo portsrepo.LedgerReader,
	capability portssvc.CapabilityChecker,
	emitter portssvc.EventEmitter,
	reopenHook portssvc.ReopenHook,
) portssvc.VoidSvcFacade {
	return &voidService{
		voidRepo:   voidRepo,
		entryRepo:  entryRepo,
		ledgerRepo: ledgerRepo,
		capability: capability,
		emitter:    emitter,
		reopenHook: reopenHook,
	}
}

var _ portssvc.VoidSvcFacade = (*voidService)(nil)

// VoidEntry reverses a posted entry in one transaction: the inverse balance
// deltas, the void record and the POSTED to VOIDED flip commit together. The
// reopen hook and the lifecycle event run only after the commit.
func (s *voidService) VoidEntry(ctx context.Context, entryID string, actorID string, reason string) (*domain.VoidRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	switch entry.Status {
	case domain.Voided:
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyVoided, entry.EntryNumber)
	case domain.Posted:
		// proceed
	default:
		return nil, fmt.Errorf("%w: entry %s is %s", apperrors.ErrNotPosted, entry.EntryNumber, entry.Status)
	}

	allowed, err := s.capability.CanTransition(ctx, actorID, entryID, domain.Posted, domain.Voided)
	if err != nil {
		return nil, fmt.Errorf("capability check failed: %w", err)
	}
	if !allowed {
		return nil, fmt.Errorf("%w: actor %s may not void entries", apperrors.ErrForbidden, actorID)
	}

	rows, err := s.ledgerRepo.ListRowsByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rows for entry %s: %w", entryID, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: posted entry %s has no ledger rows", apperrors.ErrInternal, entryID)
	}

	// Negating each row restores every touched account, destination legs
	// included, to the cent.
	changes := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		changes[row.AccountID] = changes[row.AccountID].Add(row.Amount.Neg())
	}

	seq, err := s.voidRepo.NextVoidNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve void number: %w", err)
	}

	record := domain.VoidRecord{
		VoidID:          uuid.NewString(),
		VoidNumber:      fmt.Sprintf("VOID-%06d", seq),
		OriginalEntryID: entry.EntryID,
		OriginalAmount:  entry.Amount,
		ConvertedAmount: entry.ConvertedAmount,
		AccountID:       entry.AccountID,
		VoidedAt:        time.Now().UTC(),
		VoidedBy:        actorID,
		Reason:          reason,
	}

	if err := s.voidRepo.VoidEntry(ctx, record, changes, actorID); err != nil {
		logger.Warn("Void failed, entry unchanged", "error", err, "entry_id", entryID)
		return nil, err
	}

	if entry.LinkedRequestID != nil && s.reopenHook != nil {
		// At-least-once: a hook failure is logged, never rolled back.
		if err := s.reopenHook.OnReopen(ctx, *entry.LinkedRequestID); err != nil {
			logger.Error("Reopen hook failed after void commit",
				"error", err, "entry_id", entryID, "request_id", *entry.LinkedRequestID)
		}
	}

	logger.Info("Entry voided",
		"entry_id", entryID,
		"entry_number", entry.EntryNumber,
		"void_number", record.VoidNumber,
		"actor", actorID,
	)
	if s.emitter != nil {
		s.emitter.Emit(ctx, portssvc.EventEntryVoided, map[string]any{
			"entryID":     entry.EntryID,
			"entryNumber": entry.EntryNumber,
			"voidID":      record.VoidID,
			"voidNumber":  record.VoidNumber,
			"accountID":   entry.AccountID,
		})
	}
	return &record, nil
}
