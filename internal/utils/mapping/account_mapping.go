package mapping

import (
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:      d.AccountID,
		Kind:           models.AccountKind(d.Kind),
		Name:           d.Name,
		HomeCurrencyID: d.HomeCurrencyID,
		OpeningBalance: d.OpeningBalance,
		CurrentBalance: d.CurrentBalance,
		AutoCredit:     d.AutoCredit,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		Kind:           domain.AccountKind(m.Kind),
		Name:           m.Name,
		HomeCurrencyID: m.HomeCurrencyID,
		OpeningBalance: m.OpeningBalance,
		CurrentBalance: m.CurrentBalance,
		AutoCredit:     m.AutoCredit,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
