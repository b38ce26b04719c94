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
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrZeroAmount         = errors.New("zero-value entries are not permitted")
	ErrTransferIncomplete = errors.New("transfer entries require a transfer type and destination account")
)

// entryService drives the entry approval state machine and the posting
// transaction.
type entryService struct {
	entryRepo     portsrepo.EntryRepositoryFacade
	accountSvc    portssvc.AccountSvcFacade
	conversionSvc portssvc.ConversionSvcFacade
	capabilities  portssvc.CapabilityChecker
	emitter       portssvc.EventEmitter
}

// NewEntryService creates a new EntryService.
func NewEntryService(
	entryRepo portsrepo.EntryRepositoryFacade,
	accountSvc portssvc.AccountSvcFacade,
	conversionSvc portssvc.ConversionSvcFacade,
	capabilities portssvc.CapabilityChecker,
	emitter portssvc.EventEmitter,
) portssvc.EntrySvcFacade {
	return &entryService{
		entryRepo:     entryRepo,
		accountSvc:    accountSvc,
		conversionSvc: conversionSvc,
		capabilities:  capabilities,
		emitter:       emitter,
	}
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

// checkCapability asks the authorization collaborator whether the actor may
// perform the transition.
func (s *entryService) checkCapability(ctx context.Context, actorID, entryID string, from, to domain.EntryStatus) error {
	allowed, err := s.capabilities.CanTransition(ctx, actorID, entryID, from, to)
	if err != nil {
		return fmt.Errorf("capability check failed: %w", err)
	}
	if !allowed {
		return fmt.Errorf("%w: actor %s may not transition entry from %s to %s", apperrors.ErrForbidden, actorID, from, to)
	}
	return nil
}

// emit fires a lifecycle event. Emission happens after the repository call
// returned, i.e. after the transaction committed.
func (s *entryService) emit(ctx context.Context, eventType portssvc.EventType, entry *domain.Entry) {
	if s.emitter == nil {
		return
	}
	s.emitter.Emit(ctx, eventType, map[string]any{
		"entryID":     entry.EntryID,
		"entryNumber": entry.EntryNumber,
		"accountID":   entry.AccountID,
		"status":      string(entry.Status),
		"type":        string(entry.Type),
	})
}

// CreateDraft validates and persists a new draft entry.
func (s *entryService) CreateDraft(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.Entry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		if req.Amount.IsZero() {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrZeroAmount)
		}
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if req.BankCharges.IsNegative() || req.OtherCharges.IsNegative() {
		return nil, fmt.Errorf("%w: charges must not be negative", apperrors.ErrValidation)
	}

	account, err := s.accountSvc.GetAccountByID(ctx, req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAccountNotFound)
		}
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAccountInactive)
	}

	entryType := domain.EntryType(req.Type)

	// An omitted source currency defaults to the account's home currency;
	// posting then skips conversion entirely.
	sourceCurrencyID := req.SourceCurrencyID
	if sourceCurrencyID == "" {
		sourceCurrencyID = account.HomeCurrencyID
	}

	var transfer *domain.TransferDetails
	if entryType == domain.Transfer {
		transfer, err = s.resolveTransfer(ctx, account, req.Transfer)
		if err != nil {
			return nil, err
		}
	} else if req.Transfer != nil {
		return nil, fmt.Errorf("%w: only transfer entries carry transfer details", apperrors.ErrValidation)
	}

	seq, err := s.entryRepo.NextEntryNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve entry number: %w", err)
	}

	now := time.Now().UTC()
	entry := domain.Entry{
		EntryID:          uuid.NewString(),
		EntryNumber:      fmt.Sprintf("TRX-%06d", seq),
		AccountID:        req.AccountID,
		EntryDate:        req.Date,
		Type:             entryType,
		Amount:           req.Amount,
		SourceCurrencyID: sourceCurrencyID,
		BankCharges:      req.BankCharges,
		OtherCharges:     req.OtherCharges,
		Status:           domain.Draft,
		Transfer:         transfer,
		LinkedRequestID:  req.LinkedRequestID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save draft entry", "error", err, "account_id", req.AccountID)
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	logger.Info("Draft entry created", "entry_id", entry.EntryID, "entry_number", entry.EntryNumber, "type", entry.Type)
	return &entry, nil
}

// resolveTransfer validates the destination side of a transfer draft and
// resolves the destination currency.
func (s *entryService) resolveTransfer(ctx context.Context, source *domain.Account, req *dto.TransferRequest) (*domain.TransferDetails, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrTransferIncomplete)
	}
	if source.Kind != domain.Treasury {
		return nil, fmt.Errorf("%w: transfers originate from treasuries only", apperrors.ErrValidation)
	}
	if req.ToAccountID == source.AccountID {
		return nil, fmt.Errorf("%w: transfer destination must differ from the source", apperrors.ErrValidation)
	}

	dest, err := s.accountSvc.GetAccountByID(ctx, req.ToAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: destination %s", apperrors.ErrValidation, ErrAccountNotFound)
		}
		return nil, fmt.Errorf("failed to fetch destination account: %w", err)
	}
	if !dest.IsActive {
		return nil, fmt.Errorf("%w: destination %s", apperrors.ErrValidation, ErrAccountInactive)
	}

	transferType := domain.TransferType(req.TransferType)
	switch transferType {
	case domain.TreasuryToTreasury:
		if dest.Kind != domain.Treasury {
			return nil, fmt.Errorf("%w: destination of a treasury-to-treasury transfer must be a treasury", apperrors.ErrValidation)
		}
	case domain.TreasuryToBank:
		if dest.Kind != domain.Bank {
			return nil, fmt.Errorf("%w: destination of a treasury-to-bank transfer must be a bank", apperrors.ErrValidation)
		}
	default:
		return nil, fmt.Errorf("%w: unknown transfer type '%s'", apperrors.ErrValidation, req.TransferType)
	}

	return &domain.TransferDetails{
		TransferType: transferType,
		ToAccountID:  dest.AccountID,
		ToCurrencyID: dest.HomeCurrencyID,
	}, nil
}

// SubmitEntry moves a draft to pending approval.
func (s *entryService) SubmitEntry(ctx context.Context, entryID string, actorID string) (*domain.Entry, error) {
	entry, err := s.transition(ctx, entryID, actorID, domain.Draft, domain.PendingApproval)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, portssvc.EventEntrySubmitted, entry)
	return entry, nil
}

// ApproveEntry moves a pending entry to approved, recording the approver.
func (s *entryService) ApproveEntry(ctx context.Context, entryID string, actorID string) (*domain.Entry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.loadForTransition(ctx, entryID, domain.PendingApproval, domain.Approved)
	if err != nil {
		return nil, err
	}
	if err := s.checkCapability(ctx, actorID, entryID, domain.PendingApproval, domain.Approved); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.entryRepo.MarkApproved(ctx, entryID, actorID, now); err != nil {
		logger.Error("Failed to approve entry", "error", err, "entry_id", entryID)
		return nil, fmt.Errorf("failed to approve entry: %w", err)
	}

	entry.Status = domain.Approved
	entry.ApprovedBy = &actorID
	entry.ApprovedAt = &now
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actorID

	logger.Info("Entry approved", "entry_id", entryID, "approver", actorID)
	s.emit(ctx, portssvc.EventEntryApproved, entry)
	return entry, nil
}

// RejectEntry terminally rejects a draft or pending entry. No balance effect.
func (s *entryService) RejectEntry(ctx context.Context, entryID string, actorID string, reason string) (*domain.Entry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if !entry.Status.CanTransition(domain.Rejected) {
		return nil, fmt.Errorf("%w: entry in status %s cannot be rejected", apperrors.ErrConflict, entry.Status)
	}
	if err := s.checkCapability(ctx, actorID, entryID, entry.Status, domain.Rejected); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.entryRepo.UpdateEntryStatus(ctx, entryID, entry.Status, domain.Rejected, actorID, now); err != nil {
		return nil, fmt.Errorf("failed to reject entry: %w", err)
	}

	entry.Status = domain.Rejected
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actorID

	logger.Info("Entry rejected", "entry_id", entryID, "actor", actorID, "reason", reason)
	s.emit(ctx, portssvc.EventEntryRejected, entry)
	return entry, nil
}

// PostEntry posts an approved entry. The conversion is resolved and frozen
// here; the balance mutation, status write and ledger rows all commit in one
// repository transaction or not at all.
func (s *entryService) PostEntry(ctx context.Context, entryID string, actorID string) (*domain.Entry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.loadForTransition(ctx, entryID, domain.Approved, domain.Posted)
	if err != nil {
		return nil, err
	}
	if err := s.checkCapability(ctx, actorID, entryID, domain.Approved, domain.Posted); err != nil {
		return nil, err
	}

	account, err := s.accountSvc.GetAccountByID(ctx, entry.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account %s: %w", entry.AccountID, err)
	}

	// Freeze the rate at the moment of posting. The trivial same-currency
	// case never touches the registry.
	rate, err := s.conversionSvc.ResolveRate(ctx, entry.SourceCurrencyID, account.HomeCurrencyID)
	if err != nil {
		return nil, err
	}
	converted := accounting.Round(entry.Amount.Mul(rate))
	charges := entry.Charges()

	sourceEffect, err := accounting.SignedSourceEffect(entry.Type, converted, charges)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	direction, _ := accounting.Classify(entry.Type)

	now := time.Now().UTC()
	changes := map[string]decimal.Decimal{entry.AccountID: sourceEffect}
	rows := []domain.LedgerRow{{
		RowID:       uuid.NewString(),
		EntryID:     entry.EntryID,
		EntryNumber: entry.EntryNumber,
		AccountID:   entry.AccountID,
		EntryDate:   entry.EntryDate,
		EntryType:   entry.Type,
		Direction:   direction,
		Amount:      sourceEffect,
		CreatedAt:   now,
	}}

	if entry.Type == domain.Transfer {
		destRows, destChanges, err := s.transferLegs(ctx, entry, now)
		if err != nil {
			return nil, err
		}
		rows = append(rows, destRows...)
		for accID, amt := range destChanges {
			changes[accID] = changes[accID].Add(amt)
		}
	}

	// Friendly pre-check; the repository re-validates under row locks.
	if sourceEffect.IsNegative() && account.CurrentBalance.Add(sourceEffect).IsNegative() {
		return nil, &apperrors.InsufficientBalanceError{
			AccountID: account.AccountID,
			Required:  sourceEffect.Neg(),
			Available: account.CurrentBalance,
		}
	}

	entry.ExchangeRate = rate
	entry.ConvertedAmount = converted
	entry.PostedBy = &actorID
	entry.PostedAt = &now
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actorID

	result, err := s.entryRepo.PostEntry(ctx, *entry, rows, changes)
	if err != nil {
		logger.Warn("Posting failed, entry unchanged", "error", err, "entry_id", entryID)
		return nil, err
	}

	entry.Status = domain.Posted
	entry.BalanceBefore = result.BalanceBefore
	entry.BalanceAfter = result.BalanceAfter

	logger.Info("Entry posted",
		"entry_id", entryID,
		"entry_number", entry.EntryNumber,
		"converted_amount", converted.String(),
		"balance_after", result.BalanceAfter.String(),
	)
	s.emit(ctx, portssvc.EventEntryPosted, entry)
	return entry, nil
}

// transferLegs computes the destination side of a transfer. The destination
// is credited the converted principal; charges stay on the source. An
// account that does not auto-credit (banks, reconciled from statements)
// produces no leg at all.
func (s *entryService) transferLegs(ctx context.Context, entry *domain.Entry, now time.Time) ([]domain.LedgerRow, map[string]decimal.Decimal, error) {
	if entry.Transfer == nil {
		return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrTransferIncomplete)
	}

	dest, err := s.accountSvc.GetAccountByID(ctx, entry.Transfer.ToAccountID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch destination account %s: %w", entry.Transfer.ToAccountID, err)
	}
	if !dest.IsActive {
		return nil, nil, fmt.Errorf("%w: destination %s", apperrors.ErrValidation, ErrAccountInactive)
	}

	if !dest.AutoCredit {
		return nil, nil, nil
	}

	destAmount, err := s.conversionSvc.Convert(ctx, entry.Amount, entry.SourceCurrencyID, dest.HomeCurrencyID)
	if err != nil {
		return nil, nil, err
	}
	credited := accounting.Round(destAmount)

	rows := []domain.LedgerRow{{
		RowID:       uuid.NewString(),
		EntryID:     entry.EntryID,
		EntryNumber: entry.EntryNumber,
		AccountID:   dest.AccountID,
		EntryDate:   entry.EntryDate,
		EntryType:   domain.Transfer,
		Direction:   domain.RowDebit,
		Amount:      credited,
		CreatedAt:   now,
	}}
	return rows, map[string]decimal.Decimal{dest.AccountID: credited}, nil
}

// GetEntryByID retrieves a specific entry.
func (s *entryService) GetEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	return entry, nil
}

// ListEntries retrieves a token-paginated list of entries.
func (s *entryService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	var status *domain.EntryStatus
	if params.Status != nil {
		st := domain.EntryStatus(*params.Status)
		status = &st
	}

	entries, nextToken, err := s.entryRepo.ListEntries(ctx, params.AccountID, status, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// loadForTransition fetches an entry and verifies it sits in the expected
// state for the requested transition.
func (s *entryService) loadForTransition(ctx context.Context, entryID string, from, to domain.EntryStatus) (*domain.Entry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.Status != from {
		return nil, fmt.Errorf("%w: entry is %s, expected %s", apperrors.ErrConflict, entry.Status, from)
	}
	if !from.CanTransition(to) {
		return nil, fmt.Errorf("%w: illegal transition %s -> %s", apperrors.ErrValidation, from, to)
	}
	return entry, nil
}

// transition performs a capability-checked plain status move (no balance
// effect).
func (s *entryService) transition(ctx context.Context, entryID, actorID string, from, to domain.EntryStatus) (*domain.Entry, error) {
	entry, err := s.loadForTransition(ctx, entryID, from, to)
	if err != nil {
		return nil, err
	}
	if err := s.checkCapability(ctx, actorID, entryID, from, to); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.entryRepo.UpdateEntryStatus(ctx, entryID, from, to, actorID, now); err != nil {
		return nil, fmt.Errorf("failed to update entry status: %w", err)
	}

	entry.Status = to
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actorID
	return entry, nil
}
