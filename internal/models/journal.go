package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry row.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
)

// JournalEntry is the persistence shape of a journal entry row.
// ReferenceID uses an empty string for NULL; repositories translate.
type JournalEntry struct {
	EntryID        string      `db:"entry_id"`
	TenantID       string      `db:"tenant_id"`
	EntryNumber    string      `db:"entry_number"`
	FiscalYearID   string      `db:"fiscal_year_id"`
	FiscalPeriodID string      `db:"fiscal_period_id"`
	EntryDate      time.Time   `db:"entry_date"`
	ReferenceKind  string      `db:"reference_kind"`
	ReferenceID    string      `db:"reference_id"` // Nullable
	Description    string      `db:"description"`
	Status         EntryStatus `db:"status"`
	PostedBy       *string     `db:"posted_by"`
	PostedAt       *time.Time  `db:"posted_at"`
	AuditFields
}

// JournalLine is the persistence shape of a journal entry line row.
type JournalLine struct {
	LineID       string          `db:"line_id"`
	EntryID      string          `db:"entry_id"`
	AccountID    string          `db:"account_id"`
	CurrencyCode string          `db:"currency_code"`
	Debit        decimal.Decimal `db:"debit"`
	Credit       decimal.Decimal `db:"credit"`
	AmountBase   decimal.Decimal `db:"amount_base"`
	Description  string          `db:"description"`
	LineNumber   int             `db:"line_number"`
	AuditFields
}
