package mapping

import (
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/models"
)

// ToModelCurrency converts a domain Currency to a model Currency
func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		CurrencyID:  d.CurrencyID,
		Code:        d.Code,
		Name:        d.Name,
		Symbol:      d.Symbol,
		IsBase:      d.IsBase,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCurrency converts a model Currency to a domain Currency
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyID:  m.CurrencyID,
		Code:        m.Code,
		Name:        m.Name,
		Symbol:      m.Symbol,
		IsBase:      m.IsBase,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCurrencyRate converts a domain CurrencyRate to a model CurrencyRate
func ToModelCurrencyRate(d domain.CurrencyRate) models.CurrencyRate {
	return models.CurrencyRate{
		RateID:      d.RateID,
		CurrencyID:  d.CurrencyID,
		RateToBase:  d.RateToBase,
		Operator:    models.RateOperator(d.Operator),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCurrencyRate converts a model CurrencyRate to a domain CurrencyRate
func ToDomainCurrencyRate(m models.CurrencyRate) domain.CurrencyRate {
	return domain.CurrencyRate{
		RateID:      m.RateID,
		CurrencyID:  m.CurrencyID,
		RateToBase:  m.RateToBase,
		Operator:    domain.RateOperator(m.Operator),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
