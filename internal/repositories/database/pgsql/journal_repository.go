package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finbooks-io/finbooks/internal/apperrors"
	"github.com/finbooks-io/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks-io/finbooks/internal/core/ports/repositories"
	"github.com/finbooks-io/finbooks/internal/models"
	"github.com/finbooks-io/finbooks/internal/utils/accounting"
	"github.com/finbooks-io/finbooks/internal/utils/mapping"
	"github.com/finbooks-io/finbooks/internal/utils/pagination"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

const entryColumns = `entry_id, tenant_id, entry_number, fiscal_year_id, fiscal_period_id, entry_date, reference_kind, COALESCE(reference_id, ''), description, status, posted_by, posted_at, created_at, created_by, last_updated_at, last_updated_by`
const lineColumns = `line_id, entry_id, account_id, currency_code, debit, credit, amount_base, description, line_number, created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID, &m.TenantID, &m.EntryNumber, &m.FiscalYearID, &m.FiscalPeriodID,
		&m.EntryDate, &m.ReferenceKind, &m.ReferenceID, &m.Description, &m.Status,
		&m.PostedBy, &m.PostedAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func scanLine(row pgx.Row) (models.JournalLine, error) {
	var m models.JournalLine
	err := row.Scan(
		&m.LineID, &m.EntryID, &m.AccountID, &m.CurrencyCode,
		&m.Debit, &m.Credit, &m.AmountBase, &m.Description, &m.LineNumber,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// queueLineInserts adds one insert per line to the batch.
func queueLineInserts(batch *pgx.Batch, lines []domain.JournalLine) {
	query := `
		INSERT INTO journal_entry_lines (line_id, entry_id, account_id, currency_code, debit, credit, amount_base, description, line_number, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	for _, line := range lines {
		m := mapping.ToModelJournalLine(line)
		batch.Queue(query,
			m.LineID, m.EntryID, m.AccountID, m.CurrencyCode,
			m.Debit, m.Credit, m.AmountBase, m.Description, m.LineNumber,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}
}

// SaveEntry inserts a draft entry and its lines in one transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (entry_id, tenant_id, entry_number, fiscal_year_id, fiscal_period_id, entry_date, reference_kind, reference_id, description, status, posted_by, posted_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, entryQuery,
		m.EntryID, m.TenantID, m.EntryNumber, m.FiscalYearID, m.FiscalPeriodID,
		m.EntryDate, m.ReferenceKind, nullableString(m.ReferenceID), m.Description, m.Status,
		m.PostedBy, m.PostedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}

	batch := &pgx.Batch{}
	queueLineInserts(batch, lines)
	br := tx.SendBatch(ctx, batch)
	for range lines {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return apperrors.NewAppError(500, "failed to insert journal line for entry "+m.EntryID, err)
		}
	}
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to close line insert batch", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, tenantID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
		}
		return nil, apperrors.NewAppError(500, "failed to query journal entry "+entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_entry_lines WHERE entry_id = $1 ORDER BY line_number;`

	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	var ms []models.JournalLine
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate journal line rows", err)
	}
	return mapping.ToDomainJournalLineSlice(ms), nil
}

// ListEntries pages through a tenant's entries ordered by entry date then
// creation time descending. The cursor encodes the sort key of the last row
// of the previous page.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, tenantID string, limit int, nextToken *string, status *domain.EntryStatus) ([]domain.JournalEntry, *string, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = $1`
	args := []any{tenantID}

	if status != nil {
		args = append(args, string(*status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	if nextToken != nil && *nextToken != "" {
		cursorDate, cursorCreated, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, cursorDate, cursorCreated)
		query += fmt.Sprintf(" AND (entry_date, created_at) < ($%d, $%d)", len(args)-1, len(args))
	}

	// Fetch one extra row to know whether another page exists.
	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY entry_date DESC, created_at DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to iterate journal entry rows", err)
	}

	var newNextToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		newNextToken = &token
	}
	return entries, newNextToken, nil
}

// UpdateDraft rewrites the entry header and replaces its lines wholesale.
// The header update is guarded on status = DRAFT; when it matches no row the
// entry is either posted or gone.
func (r *PgxJournalRepository) UpdateDraft(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournalEntry(entry)
	headerQuery := `
		UPDATE journal_entries
		SET fiscal_year_id = $1, fiscal_period_id = $2, entry_date = $3, description = $4, last_updated_at = $5, last_updated_by = $6
		WHERE tenant_id = $7 AND entry_id = $8 AND status = 'DRAFT';
	`
	tag, err := tx.Exec(ctx, headerQuery,
		m.FiscalYearID, m.FiscalPeriodID, m.EntryDate, m.Description,
		m.LastUpdatedAt, m.LastUpdatedBy,
		m.TenantID, m.EntryID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry "+m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMissingDraft(ctx, tx, m.TenantID, m.EntryID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = $1;`, m.EntryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for entry "+m.EntryID, err)
	}

	batch := &pgx.Batch{}
	queueLineInserts(batch, lines)
	br := tx.SendBatch(ctx, batch)
	for range lines {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return apperrors.NewAppError(500, "failed to insert journal line for entry "+m.EntryID, err)
		}
	}
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to close line insert batch", err)
	}

	return r.Commit(ctx, tx)
}

// DeleteDraft removes a draft entry and its lines in one transaction.
func (r *PgxJournalRepository) DeleteDraft(ctx context.Context, tenantID, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = $1 AND EXISTS (SELECT 1 FROM journal_entries WHERE entry_id = $1 AND tenant_id = $2 AND status = 'DRAFT');`, entryID, tenantID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for entry "+entryID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2 AND status = 'DRAFT';`, tenantID, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete journal entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMissingDraft(ctx, tx, tenantID, entryID)
	}

	return r.Commit(ctx, tx)
}

// classifyMissingDraft distinguishes a posted entry from a missing one after
// a DRAFT-guarded statement matched nothing.
func (r *PgxJournalRepository) classifyMissingDraft(ctx context.Context, tx pgx.Tx, tenantID, entryID string) error {
	var status string
	err := tx.QueryRow(ctx, `SELECT status FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2;`, tenantID, entryID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
	}
	if err != nil {
		return apperrors.NewAppError(500, "failed to re-read journal entry "+entryID, err)
	}
	return fmt.Errorf("%w: entry %s", domain.ErrEntryAlreadyPosted, entryID)
}

// PostEntry performs the atomic draft -> posted transition. The entry row is
// locked for the duration of the transaction, the fiscal period is
// share-locked so a concurrent period lock cannot slip in between the check
// and the flip, and the balance is re-validated from the stored line rows.
func (r *PgxJournalRepository) PostEntry(ctx context.Context, tenantID, entryID, posterUserID string, postedAt time.Time) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2 FOR UPDATE;`
	m, err := scanEntry(tx.QueryRow(ctx, lockQuery, tenantID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
		}
		return nil, apperrors.NewAppError(500, "failed to lock journal entry "+entryID, err)
	}
	if m.Status == models.Posted {
		return nil, fmt.Errorf("%w: entry %s", domain.ErrEntryAlreadyPosted, entryID)
	}

	var isLocked bool
	periodQuery := `SELECT is_locked FROM fiscal_periods WHERE tenant_id = $1 AND fiscal_period_id = $2 FOR SHARE;`
	if err := tx.QueryRow(ctx, periodQuery, tenantID, m.FiscalPeriodID).Scan(&isLocked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: fiscal period %s", apperrors.ErrNotFound, m.FiscalPeriodID)
		}
		return nil, apperrors.NewAppError(500, "failed to lock fiscal period "+m.FiscalPeriodID, err)
	}
	if isLocked {
		return nil, fmt.Errorf("%w: period %s", domain.ErrPeriodLocked, m.FiscalPeriodID)
	}

	// Re-validate the balance from the stored rows; the draft may have been
	// written by an older build or touched out of band.
	var lineCount int
	debits := decimal.Zero
	credits := decimal.Zero
	totalsQuery := `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN debit > 0 THEN amount_base ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN credit > 0 THEN amount_base ELSE 0 END), 0)
		FROM journal_entry_lines
		WHERE entry_id = $1;
	`
	if err := tx.QueryRow(ctx, totalsQuery, entryID).Scan(&lineCount, &debits, &credits); err != nil {
		return nil, apperrors.NewAppError(500, "failed to total lines for entry "+entryID, err)
	}
	if lineCount < 2 {
		return nil, domain.ErrTooFewLines
	}
	if !accounting.WithinTolerance(debits, credits) {
		return nil, domain.ImbalancedEntryError{Debits: debits, Credits: credits}
	}

	flipQuery := `
		UPDATE journal_entries
		SET status = 'POSTED', posted_by = $1, posted_at = $2, last_updated_at = $2, last_updated_by = $1
		WHERE tenant_id = $3 AND entry_id = $4 AND status = 'DRAFT';
	`
	tag, err := tx.Exec(ctx, flipQuery, posterUserID, postedAt, tenantID, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to post journal entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		// The row was locked, so this cannot happen; keep the guard anyway.
		return nil, fmt.Errorf("%w: entry %s", domain.ErrEntryAlreadyPosted, entryID)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	m.Status = models.Posted
	m.PostedBy = &posterUserID
	m.PostedAt = &postedAt
	m.LastUpdatedAt = postedAt
	m.LastUpdatedBy = posterUserID
	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}
