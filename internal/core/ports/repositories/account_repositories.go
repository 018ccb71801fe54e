package repositories

import (
	"context"

	"github.com/finbooks-io/finbooks/internal/core/domain"
)

// AccountRepository defines persistence operations for the chart of accounts.
type AccountRepository interface {
	// SaveAccount inserts a new account. A per-tenant code collision is
	// returned as domain.ErrDuplicateCode.
	SaveAccount(ctx context.Context, account domain.Account) error

	// FindAccountByID retrieves an account scoped to a tenant.
	// Returns apperrors.ErrNotFound when absent.
	FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves a batch of accounts keyed by ID, tenant scoped.
	FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts returns the tenant's accounts ordered by display order, then code.
	ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error)

	// UpdateAccount persists mutable account fields.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// HasJournalLines reports whether any journal line (draft or posted)
	// references the account.
	HasJournalLines(ctx context.Context, accountID string) (bool, error)

	// DeleteAccount hard-deletes an account. Returns domain.ErrAccountReferenced
	// when journal lines reference it; deactivation is the supported path then.
	DeleteAccount(ctx context.Context, tenantID, accountID string) error
}
