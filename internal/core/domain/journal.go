package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
// The only transition is DRAFT -> POSTED; posted entries are immutable
// and corrections happen via a new reversing entry.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
)

// ReferenceKind identifies the kind of document a journal entry originates from.
type ReferenceKind string

const (
	RefManual          ReferenceKind = "MANUAL"
	RefSalesInvoice    ReferenceKind = "SALES_INVOICE"
	RefPurchaseInvoice ReferenceKind = "PURCHASE_INVOICE"
	RefPayment         ReferenceKind = "PAYMENT"
	RefDepreciation    ReferenceKind = "DEPRECIATION"
	RefPayroll         ReferenceKind = "PAYROLL"
	RefReversal        ReferenceKind = "REVERSAL" // References the reversed journal entry
)

// IsValid reports whether k is one of the known reference kinds.
func (k ReferenceKind) IsValid() bool {
	switch k {
	case RefManual, RefSalesInvoice, RefPurchaseInvoice, RefPayment, RefDepreciation, RefPayroll, RefReversal:
		return true
	}
	return false
}

// EntryReference is a tagged reference to the document that originated an
// entry. Kind RefManual carries an empty ID; every other kind requires one.
type EntryReference struct {
	Kind ReferenceKind `json:"kind"`
	ID   string        `json:"id"` // Empty for MANUAL
}

// IsValid reports whether the reference is well formed.
func (r EntryReference) IsValid() bool {
	if !r.Kind.IsValid() {
		return false
	}
	if r.Kind == RefManual {
		return r.ID == ""
	}
	return r.ID != ""
}

// JournalEntry is the aggregate root of the ledger: a dated, numbered,
// balanced set of lines against the chart of accounts.
type JournalEntry struct {
	EntryID        string         `json:"entryID"`     // Primary key (UUID)
	TenantID       string         `json:"tenantID"`    // FK -> tenants (NOT NULL)
	EntryNumber    string         `json:"entryNumber"` // Unique sequential per tenant
	FiscalYearID   string         `json:"fiscalYearID"`
	FiscalPeriodID string         `json:"fiscalPeriodID"`
	EntryDate      time.Time      `json:"entryDate"`
	Reference      EntryReference `json:"reference"`
	Description    string         `json:"description"`
	Status         EntryStatus    `json:"status"`
	PostedBy       *string        `json:"postedBy,omitempty"` // Set on post, never cleared
	PostedAt       *time.Time     `json:"postedAt,omitempty"`
	AuditFields

	// Lines are loaded on demand; an entry always owns at least two.
	Lines []JournalLine `json:"lines,omitempty"`
}

// IsPosted reports whether the entry has reached its terminal state.
func (e JournalEntry) IsPosted() bool {
	return e.Status == Posted
}

// JournalLine is a single debit or credit within a journal entry.
// Exactly one of Debit/Credit is strictly positive; the other is zero.
type JournalLine struct {
	LineID       string          `json:"lineID"`  // Primary key (UUID)
	EntryID      string          `json:"entryID"` // FK -> journal_entries
	AccountID    string          `json:"accountID"`
	CurrencyCode string          `json:"currencyCode"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	AmountBase   decimal.Decimal `json:"amountBase"` // Line amount in the tenant base currency
	Description  string          `json:"description"`
	LineNumber   int             `json:"lineNumber"` // 1-based ordering within the entry
	AuditFields
}

// Amount returns the line's magnitude, whichever side it sits on.
func (l JournalLine) Amount() decimal.Decimal {
	if l.Debit.IsPositive() {
		return l.Debit
	}
	return l.Credit
}

// IsDebit reports whether the line sits on the debit side.
func (l JournalLine) IsDebit() bool {
	return l.Debit.IsPositive()
}
