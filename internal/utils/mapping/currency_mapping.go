package mapping

import (
	"github.com/finbooks-io/finbooks/internal/core/domain"
	"github.com/finbooks-io/finbooks/internal/models"
)

// ToModelCurrency converts a domain Currency to its persistence shape.
func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		CurrencyID:     d.CurrencyID,
		TenantID:       d.TenantID,
		Code:           d.Code,
		Name:           d.Name,
		Symbol:         d.Symbol,
		DecimalPlaces:  d.DecimalPlaces,
		IsBaseCurrency: d.IsBaseCurrency,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCurrency converts a model Currency to the domain shape.
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyID:     m.CurrencyID,
		TenantID:       m.TenantID,
		Code:           m.Code,
		Name:           m.Name,
		Symbol:         m.Symbol,
		DecimalPlaces:  m.DecimalPlaces,
		IsBaseCurrency: m.IsBaseCurrency,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelExchangeRate converts a domain ExchangeRate to its persistence shape.
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID:   d.ExchangeRateID,
		TenantID:         d.TenantID,
		FromCurrencyCode: d.FromCurrencyCode,
		ToCurrencyCode:   d.ToCurrencyCode,
		Rate:             d.Rate,
		DateEffective:    d.DateEffective,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to the domain shape.
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID:   m.ExchangeRateID,
		TenantID:         m.TenantID,
		FromCurrencyCode: m.FromCurrencyCode,
		ToCurrencyCode:   m.ToCurrencyCode,
		Rate:             m.Rate,
		DateEffective:    m.DateEffective,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
