package dto

import (
	"time"

	"github.com/finbooks-io/finbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one submitted line of a journal entry. Exactly one of
// Debit/Credit must be strictly positive; the engine validates and reports the
// offending line index.
type JournalLineRequest struct {
	AccountID    string          `json:"accountID" binding:"required,uuid"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3,uppercase"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	Description  string          `json:"description" binding:"max=255"`
}

// EntryReferenceRequest identifies the originating document of an entry.
type EntryReferenceRequest struct {
	Kind domain.ReferenceKind `json:"kind" binding:"required,referencekind"`
	ID   string               `json:"id" binding:"omitempty,uuid"`
}

// CreateJournalEntryRequest defines the JSON body for creating a draft entry.
// FiscalPeriodID is optional; when absent the period is resolved from EntryDate.
type CreateJournalEntryRequest struct {
	EntryDate      time.Time              `json:"entryDate" binding:"required"`
	FiscalPeriodID string                 `json:"fiscalPeriodID" binding:"omitempty,uuid"`
	Description    string                 `json:"description" binding:"required,max=255"`
	Reference      *EntryReferenceRequest `json:"reference" binding:"omitempty"`
	Lines          []JournalLineRequest   `json:"lines" binding:"required,min=2,dive"`
}

// UpdateJournalEntryRequest defines the JSON body for editing a draft.
// Lines, when present, fully replace the existing line set; there is no
// per-line patching.
type UpdateJournalEntryRequest struct {
	EntryDate      *time.Time           `json:"entryDate"`
	FiscalPeriodID *string              `json:"fiscalPeriodID" binding:"omitempty,uuid"`
	Description    *string              `json:"description" binding:"omitempty,max=255"`
	Lines          []JournalLineRequest `json:"lines" binding:"omitempty,min=2,dive"`
}

// ReverseJournalEntryRequest defines the JSON body for reversing a posted entry.
type ReverseJournalEntryRequest struct {
	ReversalDate time.Time `json:"reversalDate" binding:"required"`
}

// ListJournalEntriesParams holds query parameters for listing entries.
type ListJournalEntriesParams struct {
	Limit        int     `form:"limit"`
	NextToken    *string `form:"nextToken"`
	Status       *string `form:"status" binding:"omitempty,oneof=DRAFT POSTED"`
	IncludeLines bool    `form:"includeLines"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID       string          `json:"lineID"`
	AccountID    string          `json:"accountID"`
	CurrencyCode string          `json:"currencyCode"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	AmountBase   decimal.Decimal `json:"amountBase"`
	Description  string          `json:"description,omitempty"`
	LineNumber   int             `json:"lineNumber"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID        string                `json:"entryID"`
	EntryNumber    string                `json:"entryNumber"`
	FiscalYearID   string                `json:"fiscalYearID"`
	FiscalPeriodID string                `json:"fiscalPeriodID"`
	EntryDate      time.Time             `json:"entryDate"`
	Reference      domain.EntryReference `json:"reference"`
	Description    string                `json:"description"`
	Status         domain.EntryStatus    `json:"status"`
	PostedBy       *string               `json:"postedBy,omitempty"`
	PostedAt       *time.Time            `json:"postedAt,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	CreatedBy      string                `json:"createdBy"`
	Lines          []JournalLineResponse `json:"lines,omitempty"`
}

// ListJournalEntriesResponse wraps a page of entries with the next cursor.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalLineResponse converts a domain.JournalLine to its response DTO.
func ToJournalLineResponse(l *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:       l.LineID,
		AccountID:    l.AccountID,
		CurrencyCode: l.CurrencyCode,
		Debit:        l.Debit,
		Credit:       l.Credit,
		AmountBase:   l.AmountBase,
		Description:  l.Description,
		LineNumber:   l.LineNumber,
	}
}

// ToJournalEntryResponse converts a domain.JournalEntry (with any loaded
// lines) to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:        e.EntryID,
		EntryNumber:    e.EntryNumber,
		FiscalYearID:   e.FiscalYearID,
		FiscalPeriodID: e.FiscalPeriodID,
		EntryDate:      e.EntryDate,
		Reference:      e.Reference,
		Description:    e.Description,
		Status:         e.Status,
		PostedBy:       e.PostedBy,
		PostedAt:       e.PostedAt,
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToJournalLineResponse(&e.Lines[i])
		}
	}
	return resp
}
