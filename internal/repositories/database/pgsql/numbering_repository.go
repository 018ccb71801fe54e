package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks-io/finbooks/internal/apperrors"
	portsrepo "github.com/finbooks-io/finbooks/internal/core/ports/repositories"
)

type PgxEntryNumberAllocator struct {
	BaseRepository
}

// newPgxEntryNumberAllocator creates the per-tenant entry number source.
func newPgxEntryNumberAllocator(pool *pgxpool.Pool) portsrepo.EntryNumberAllocator {
	return &PgxEntryNumberAllocator{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EntryNumberAllocator = (*PgxEntryNumberAllocator)(nil)

// AllocateEntryNumber bumps the tenant's sequence row with a single upsert.
// The row lock taken by the UPDATE serializes concurrent allocations, so two
// drafts can never receive the same number.
func (r *PgxEntryNumberAllocator) AllocateEntryNumber(ctx context.Context, tenantID string) (string, error) {
	query := `
		INSERT INTO entry_sequences (tenant_id, last_value)
		VALUES ($1, 1)
		ON CONFLICT (tenant_id) DO UPDATE SET last_value = entry_sequences.last_value + 1
		RETURNING last_value;
	`
	var n int64
	if err := r.Pool.QueryRow(ctx, query, tenantID).Scan(&n); err != nil {
		return "", apperrors.NewAppError(500, "failed to allocate entry number", err)
	}
	return fmt.Sprintf("JE-%06d", n), nil
}
