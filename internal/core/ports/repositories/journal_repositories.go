package repositories

import (
	"context"
	"time"

	"github.com/finbooks-io/finbooks/internal/core/domain"
)

// JournalRepository defines persistence operations for journal entries and
// their lines. All mutating operations on an entry run inside a single
// database transaction; a failed call leaves no partial state.
type JournalRepository interface {
	// SaveEntry inserts a draft entry with its lines in one transaction.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// FindEntryByID retrieves an entry header, tenant scoped.
	FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves an entry's lines ordered by line number.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// ListEntries returns a page of entries ordered by entry date then
	// creation time descending, with an opaque cursor for the next page.
	// status filters when non-nil.
	ListEntries(ctx context.Context, tenantID string, limit int, nextToken *string, status *domain.EntryStatus) ([]domain.JournalEntry, *string, error)

	// UpdateDraft rewrites the entry header and fully replaces its lines in
	// one transaction. The update is guarded on status = DRAFT in SQL;
	// a posted row yields domain.ErrEntryAlreadyPosted.
	UpdateDraft(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// DeleteDraft removes a draft entry and its lines. A posted row yields
	// domain.ErrEntryAlreadyPosted.
	DeleteDraft(ctx context.Context, tenantID, entryID string) error

	// PostEntry performs the atomic draft -> posted transition: row-locks the
	// entry, re-reads its status, share-locks the fiscal period and checks its
	// lock flag, re-validates the balance from the current line rows, then
	// flips status and stamps poster and timestamp. Failure modes:
	// domain.ErrEntryAlreadyPosted, domain.ErrPeriodLocked,
	// domain.ImbalancedEntryError. On any failure the transaction rolls back
	// and the entry is left exactly as it was.
	PostEntry(ctx context.Context, tenantID, entryID, posterUserID string, postedAt time.Time) (*domain.JournalEntry, error)
}

// EntryNumberAllocator hands out unique, monotonically increasing entry
// numbers per tenant. Allocation is atomic under concurrent draft creation.
type EntryNumberAllocator interface {
	AllocateEntryNumber(ctx context.Context, tenantID string) (string, error)
}
