package mapping

import (
	"github.com/finbooks-io/finbooks/internal/core/domain"
	"github.com/finbooks-io/finbooks/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to its persistence shape.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:        d.EntryID,
		TenantID:       d.TenantID,
		EntryNumber:    d.EntryNumber,
		FiscalYearID:   d.FiscalYearID,
		FiscalPeriodID: d.FiscalPeriodID,
		EntryDate:      d.EntryDate,
		ReferenceKind:  string(d.Reference.Kind),
		ReferenceID:    d.Reference.ID,
		Description:    d.Description,
		Status:         models.EntryStatus(d.Status),
		PostedBy:       d.PostedBy,
		PostedAt:       d.PostedAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to the domain shape.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:        m.EntryID,
		TenantID:       m.TenantID,
		EntryNumber:    m.EntryNumber,
		FiscalYearID:   m.FiscalYearID,
		FiscalPeriodID: m.FiscalPeriodID,
		EntryDate:      m.EntryDate,
		Reference:      domain.EntryReference{Kind: domain.ReferenceKind(m.ReferenceKind), ID: m.ReferenceID},
		Description:    m.Description,
		Status:         domain.EntryStatus(m.Status),
		PostedBy:       m.PostedBy,
		PostedAt:       m.PostedAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to its persistence shape.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		AccountID:    d.AccountID,
		CurrencyCode: d.CurrencyCode,
		Debit:        d.Debit,
		Credit:       d.Credit,
		AmountBase:   d.AmountBase,
		Description:  d.Description,
		LineNumber:   d.LineNumber,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to the domain shape.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		AccountID:    m.AccountID,
		CurrencyCode: m.CurrencyCode,
		Debit:        m.Debit,
		Credit:       m.Credit,
		AmountBase:   m.AmountBase,
		Description:  m.Description,
		LineNumber:   m.LineNumber,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines.
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
