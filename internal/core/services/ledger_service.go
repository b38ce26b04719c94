package services

import (
	"context"
	"fmt"
	"time"

	"github.com/magedShawky1972/transfigure-admin-sub004/internal/apperrors"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	portsrepo "github.com/magedShawky1972/transfigure-admin-sub004/internal/core/ports/repositories"
	portssvc "github.com/magedShawky1972/transfigure-admin-sub004/internal/core/ports/services"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/middleware"
)

// ledgerService builds running-balance statements by replaying ledger rows.
// It never mutates anything.
type ledgerService struct {
	ledgerRepo  portsrepo.LedgerReader
	accountRepo portsrepo.AccountReader
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerReader, accountRepo portsrepo.AccountReader) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// BuildLedger replays rows between the given dates. The opening balance is
// the account's opening balance plus every non-voided row dated strictly
// before the range; with no account filter the openings of every account
// are summed, inactive ones included, because deactivation never removes an
// account's rows from the ledger. Voided entries contribute nothing, so the
// closing balance always reconciles with the stored account balances.
func (s *ledgerService) BuildLedger(ctx context.Context, accountID *string, dateFrom, dateTo time.Time) (*domain.LedgerReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if dateTo.Before(dateFrom) {
		return nil, fmt.Errorf("%w: date range end precedes its start", apperrors.ErrValidation)
	}

	report := &domain.LedgerReport{
		DateFrom: dateFrom,
		DateTo:   dateTo,
	}

	if accountID != nil {
		account, err := s.accountRepo.FindAccountByID(ctx, *accountID)
		if err != nil {
			return nil, fmt.Errorf("failed to find account %s: %w", *accountID, err)
		}
		report.AccountID = account.AccountID
		report.OpeningBalance = account.OpeningBalance
	} else {
		opening, err := s.accountRepo.SumOpeningBalances(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to sum opening balances: %w", err)
		}
		report.OpeningBalance = opening
	}

	carried, err := s.ledgerRepo.SumRowsBefore(ctx, accountID, dateFrom)
	if err != nil {
		return nil, fmt.Errorf("failed to sum prior rows: %w", err)
	}
	report.OpeningBalance = report.OpeningBalance.Add(carried)

	rows, err := s.ledgerRepo.ListRowsBetween(ctx, accountID, dateFrom, dateTo)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger rows: %w", err)
	}

	running := report.OpeningBalance
	lines := make([]domain.LedgerLine, 0, len(rows))
	for _, row := range rows {
		running = running.Add(row.Amount)
		lines = append(lines, domain.LedgerLine{
			EntryID:        row.EntryID,
			EntryNumber:    row.EntryNumber,
			AccountID:      row.AccountID,
			EntryDate:      row.EntryDate,
			EntryType:      row.EntryType,
			Direction:      row.Direction,
			Amount:         row.Amount,
			RunningBalance: running,
		})
	}
	report.Lines = lines
	report.ClosingBalance = running

	logger.Debug("Ledger built", "lines", len(lines), "closing_balance", running.String())
	return report, nil
}
