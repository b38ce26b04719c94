package dto

import (
	"time"

	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerQuery holds the filters for building a ledger report.
type LedgerQuery struct {
	AccountID *string   `form:"accountID"`
	DateFrom  time.Time `form:"dateFrom" binding:"required" time_format:"2006-01-02"`
	DateTo    time.Time `form:"dateTo" binding:"required" time_format:"2006-01-02"`
}

// LedgerLineResponse is one statement row with its running balance.
type LedgerLineResponse struct {
	EntryID        string          `json:"entryID"`
	EntryNumber    string          `json:"entryNumber"`
	AccountID      string          `json:"accountID"`
	Date           time.Time       `json:"date"`
	Type           string          `json:"type"`
	Direction      string          `json:"direction"`
	Amount         decimal.Decimal `json:"amount"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// LedgerReportResponse is the rendered statement for a date range.
type LedgerReportResponse struct {
	AccountID      string               `json:"accountID,omitempty"`
	DateFrom       time.Time            `json:"dateFrom"`
	DateTo         time.Time            `json:"dateTo"`
	OpeningBalance decimal.Decimal      `json:"openingBalance"`
	Lines          []LedgerLineResponse `json:"lines"`
	ClosingBalance decimal.Decimal      `json:"closingBalance"`
}

// ToLedgerReportResponse converts a domain.LedgerReport to its DTO.
func ToLedgerReportResponse(r *domain.LedgerReport) LedgerReportResponse {
	lines := make([]LedgerLineResponse, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = LedgerLineResponse{
			EntryID:        l.EntryID,
			EntryNumber:    l.EntryNumber,
			AccountID:      l.AccountID,
			Date:           l.EntryDate,
			Type:           string(l.EntryType),
			Direction:      string(l.Direction),
			Amount:         l.Amount,
			RunningBalance: l.RunningBalance,
		}
	}
	return LedgerReportResponse{
		AccountID:      r.AccountID,
		DateFrom:       r.DateFrom,
		DateTo:         r.DateTo,
		OpeningBalance: r.OpeningBalance,
		Lines:          lines,
		ClosingBalance: r.ClosingBalance,
	}
}
