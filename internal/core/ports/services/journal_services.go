package services

import (
	"context"
	"time"

	"github.com/finbooks-io/finbooks/internal/core/domain"
	"github.com/finbooks-io/finbooks/internal/dto"
)

// JournalService is the journal entry engine: the draft -> posted state
// machine over balanced multi-line entries.
type JournalService interface {
	// CreateDraft validates and persists a new draft entry. Validation order:
	// period resolution, per-line debit/credit exclusivity, balance within
	// tolerance, tenant ownership of every referenced resource.
	CreateDraft(ctx context.Context, tenantID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	GetEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, tenantID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)

	// UpdateDraft edits a draft; a submitted line set replaces the existing
	// one wholesale. Posted entries fail with domain.ErrEntryAlreadyPosted.
	UpdateDraft(ctx context.Context, tenantID, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// Post performs the irreversible draft -> posted transition. From this
	// moment the entry contributes to account balances and reports.
	Post(ctx context.Context, tenantID, entryID, actingUserID string) (*domain.JournalEntry, error)

	// DeleteDraft removes a draft entry. Posted entries can never be deleted.
	DeleteDraft(ctx context.Context, tenantID, entryID, userID string) error

	// Reverse creates a new draft offsetting a posted entry line for line,
	// dated reversalDate and referencing the original. It must be explicitly
	// posted to take effect.
	Reverse(ctx context.Context, tenantID, entryID string, reversalDate time.Time, userID string) (*domain.JournalEntry, error)
}

// EventPublisher delivers domain events to audit and notification
// subsystems. Publish must not block the calling operation.
type EventPublisher interface {
	PublishJournalEntryPosted(ctx context.Context, event domain.JournalEntryPosted)
}
