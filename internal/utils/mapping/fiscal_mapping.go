package mapping

import (
	"github.com/finbooks-io/finbooks/internal/core/domain"
	"github.com/finbooks-io/finbooks/internal/models"
)

// ToModelFiscalYear converts a domain FiscalYear to its persistence shape.
func ToModelFiscalYear(d domain.FiscalYear) models.FiscalYear {
	return models.FiscalYear{
		FiscalYearID: d.FiscalYearID,
		TenantID:     d.TenantID,
		Name:         d.Name,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		IsActive:     d.IsActive,
		IsClosed:     d.IsClosed,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFiscalYear converts a model FiscalYear to the domain shape.
func ToDomainFiscalYear(m models.FiscalYear) domain.FiscalYear {
	return domain.FiscalYear{
		FiscalYearID: m.FiscalYearID,
		TenantID:     m.TenantID,
		Name:         m.Name,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		IsActive:     m.IsActive,
		IsClosed:     m.IsClosed,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelFiscalPeriod converts a domain FiscalPeriod to its persistence shape.
func ToModelFiscalPeriod(d domain.FiscalPeriod) models.FiscalPeriod {
	return models.FiscalPeriod{
		FiscalPeriodID: d.FiscalPeriodID,
		TenantID:       d.TenantID,
		FiscalYearID:   d.FiscalYearID,
		Name:           d.Name,
		Code:           d.Code,
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		IsActive:       d.IsActive,
		IsLocked:       d.IsLocked,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFiscalPeriod converts a model FiscalPeriod to the domain shape.
func ToDomainFiscalPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		FiscalPeriodID: m.FiscalPeriodID,
		TenantID:       m.TenantID,
		FiscalYearID:   m.FiscalYearID,
		Name:           m.Name,
		Code:           m.Code,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		IsActive:       m.IsActive,
		IsLocked:       m.IsLocked,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFiscalPeriodSlice converts a slice of model FiscalPeriods.
func ToDomainFiscalPeriodSlice(ms []models.FiscalPeriod) []domain.FiscalPeriod {
	ds := make([]domain.FiscalPeriod, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFiscalPeriod(m)
	}
	return ds
}
