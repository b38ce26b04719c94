package mapping

import (
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/models"
)

// ToModelEntry converts a domain Entry to a model Entry, flattening the
// transfer details into the nullable transfer columns.
func ToModelEntry(d domain.Entry) models.Entry {
	m := models.Entry{
		EntryID:          d.EntryID,
		EntryNumber:      d.EntryNumber,
		AccountID:        d.AccountID,
		EntryDate:        d.EntryDate,
		Type:             models.EntryType(d.Type),
		Amount:           d.Amount,
		SourceCurrencyID: d.SourceCurrencyID,
		ExchangeRate:     d.ExchangeRate,
		ConvertedAmount:  d.ConvertedAmount,
		BankCharges:      d.BankCharges,
		OtherCharges:     d.OtherCharges,
		Status:           models.EntryStatus(d.Status),
		BalanceBefore:    d.BalanceBefore,
		BalanceAfter:     d.BalanceAfter,
		LinkedRequestID:  d.LinkedRequestID,
		ApprovedBy:       d.ApprovedBy,
		ApprovedAt:       d.ApprovedAt,
		PostedBy:         d.PostedBy,
		PostedAt:         d.PostedAt,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
	if d.Transfer != nil {
		transferType := models.TransferType(d.Transfer.TransferType)
		toAccountID := d.Transfer.ToAccountID
		toCurrencyID := d.Transfer.ToCurrencyID
		m.TransferType = &transferType
		m.ToAccountID = &toAccountID
		m.ToCurrencyID = &toCurrencyID
	}
	return m
}

// ToDomainEntry converts a model Entry to a domain Entry.
func ToDomainEntry(m models.Entry) domain.Entry {
	d := domain.Entry{
		EntryID:          m.EntryID,
		EntryNumber:      m.EntryNumber,
		AccountID:        m.AccountID,
		EntryDate:        m.EntryDate,
		Type:             domain.EntryType(m.Type),
		Amount:           m.Amount,
		SourceCurrencyID: m.SourceCurrencyID,
		ExchangeRate:     m.ExchangeRate,
		ConvertedAmount:  m.ConvertedAmount,
		BankCharges:      m.BankCharges,
		OtherCharges:     m.OtherCharges,
		Status:           domain.EntryStatus(m.Status),
		BalanceBefore:    m.BalanceBefore,
		BalanceAfter:     m.BalanceAfter,
		LinkedRequestID:  m.LinkedRequestID,
		ApprovedBy:       m.ApprovedBy,
		ApprovedAt:       m.ApprovedAt,
		PostedBy:         m.PostedBy,
		PostedAt:         m.PostedAt,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
	if m.TransferType != nil && m.ToAccountID != nil && m.ToCurrencyID != nil {
		d.Transfer = &domain.TransferDetails{
			TransferType: domain.TransferType(*m.TransferType),
			ToAccountID:  *m.ToAccountID,
			ToCurrencyID: *m.ToCurrencyID,
		}
	}
	return d
}

// ToModelLedgerRow converts a domain LedgerRow to a model LedgerRow
func ToModelLedgerRow(d domain.LedgerRow) models.LedgerRow {
	return models.LedgerRow{
		RowID:       d.RowID,
		EntryID:     d.EntryID,
		EntryNumber: d.EntryNumber,
		AccountID:   d.AccountID,
		EntryDate:   d.EntryDate,
		EntryType:   models.EntryType(d.EntryType),
		Direction:   models.RowDirection(d.Direction),
		Amount:      d.Amount,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainLedgerRow converts a model LedgerRow to a domain LedgerRow
func ToDomainLedgerRow(m models.LedgerRow) domain.LedgerRow {
	return domain.LedgerRow{
		RowID:       m.RowID,
		EntryID:     m.EntryID,
		EntryNumber: m.EntryNumber,
		AccountID:   m.AccountID,
		EntryDate:   m.EntryDate,
		EntryType:   domain.EntryType(m.EntryType),
		Direction:   domain.RowDirection(m.Direction),
		Amount:      m.Amount,
		CreatedAt:   m.CreatedAt,
	}
}

// ToModelVoidRecord converts a domain VoidRecord to a model VoidRecord
func ToModelVoidRecord(d domain.VoidRecord) models.VoidRecord {
	return models.VoidRecord{
		VoidID:          d.VoidID,
		VoidNumber:      d.VoidNumber,
		OriginalEntryID: d.OriginalEntryID,
		OriginalAmount:  d.OriginalAmount,
		ConvertedAmount: d.ConvertedAmount,
		AccountID:       d.AccountID,
		VoidedAt:        d.VoidedAt,
		VoidedBy:        d.VoidedBy,
		Reason:          d.Reason,
	}
}

// ToDomainVoidRecord converts a model VoidRecord to a domain VoidRecord
func ToDomainVoidRecord(m models.VoidRecord) domain.VoidRecord {
	return domain.VoidRecord{
		VoidID:          m.VoidID,
		VoidNumber:      m.VoidNumber,
		OriginalEntryID: m.OriginalEntryID,
		OriginalAmount:  m.OriginalAmount,
		ConvertedAmount: m.ConvertedAmount,
		AccountID:       m.AccountID,
		VoidedAt:        m.VoidedAt,
		VoidedBy:        m.VoidedBy,
		Reason:          m.Reason,
	}
}
