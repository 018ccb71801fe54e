package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks-io/finbooks/internal/apperrors"
	"github.com/finbooks-io/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks-io/finbooks/internal/core/ports/repositories"
	"github.com/finbooks-io/finbooks/internal/models"
	"github.com/finbooks-io/finbooks/internal/utils/mapping"
)

type PgxFiscalRepository struct {
	BaseRepository
}

// newPgxFiscalRepository creates a new repository for fiscal calendar data.
func newPgxFiscalRepository(pool *pgxpool.Pool) portsrepo.FiscalRepository {
	return &PgxFiscalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FiscalRepository = (*PgxFiscalRepository)(nil)

const fiscalYearColumns = `fiscal_year_id, tenant_id, name, start_date, end_date, is_active, is_closed, created_at, created_by, last_updated_at, last_updated_by`
const fiscalPeriodColumns = `fiscal_period_id, tenant_id, fiscal_year_id, name, code, start_date, end_date, is_active, is_locked, created_at, created_by, last_updated_at, last_updated_by`

func scanFiscalYear(row pgx.Row) (models.FiscalYear, error) {
	var m models.FiscalYear
	err := row.Scan(
		&m.FiscalYearID, &m.TenantID, &m.Name, &m.StartDate, &m.EndDate,
		&m.IsActive, &m.IsClosed,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func scanFiscalPeriod(row pgx.Row) (models.FiscalPeriod, error) {
	var m models.FiscalPeriod
	err := row.Scan(
		&m.FiscalPeriodID, &m.TenantID, &m.FiscalYearID, &m.Name, &m.Code,
		&m.StartDate, &m.EndDate, &m.IsActive, &m.IsLocked,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxFiscalRepository) SaveFiscalYear(ctx context.Context, year domain.FiscalYear) error {
	m := mapping.ToModelFiscalYear(year)

	query := `
		INSERT INTO fiscal_years (fiscal_year_id, tenant_id, name, start_date, end_date, is_active, is_closed, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.FiscalYearID, m.TenantID, m.Name, m.StartDate, m.EndDate,
		m.IsActive, m.IsClosed,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: fiscal year %s", domain.ErrDuplicateCode, year.Name)
		}
		return apperrors.NewAppError(500, "failed to insert fiscal year "+m.FiscalYearID, err)
	}
	return nil
}

func (r *PgxFiscalRepository) FindFiscalYearByID(ctx context.Context, tenantID, fiscalYearID string) (*domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE tenant_id = $1 AND fiscal_year_id = $2;`

	m, err := scanFiscalYear(r.Pool.QueryRow(ctx, query, tenantID, fiscalYearID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: fiscal year %s", apperrors.ErrNotFound, fiscalYearID)
		}
		return nil, apperrors.NewAppError(500, "failed to query fiscal year "+fiscalYearID, err)
	}

	year := mapping.ToDomainFiscalYear(m)
	return &year, nil
}

func (r *PgxFiscalRepository) ListFiscalYears(ctx context.Context, tenantID string) ([]domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE tenant_id = $1 ORDER BY start_date;`

	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fiscal years", err)
	}
	defer rows.Close()

	var years []domain.FiscalYear
	for rows.Next() {
		m, err := scanFiscalYear(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan fiscal year row", err)
		}
		years = append(years, mapping.ToDomainFiscalYear(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate fiscal year rows", err)
	}
	return years, nil
}

func (r *PgxFiscalRepository) UpdateFiscalYear(ctx context.Context, year domain.FiscalYear) error {
	m := mapping.ToModelFiscalYear(year)

	query := `
		UPDATE fiscal_years
		SET name = $1, is_active = $2, is_closed = $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $6 AND fiscal_year_id = $7;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Name, m.IsActive, m.IsClosed, m.LastUpdatedAt, m.LastUpdatedBy,
		m.TenantID, m.FiscalYearID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update fiscal year "+m.FiscalYearID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: fiscal year %s", apperrors.ErrNotFound, m.FiscalYearID)
	}
	return nil
}

func (r *PgxFiscalRepository) SaveFiscalPeriod(ctx context.Context, period domain.FiscalPeriod) error {
	m := mapping.ToModelFiscalPeriod(period)

	query := `
		INSERT INTO fiscal_periods (fiscal_period_id, tenant_id, fiscal_year_id, name, code, start_date, end_date, is_active, is_locked, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.FiscalPeriodID, m.TenantID, m.FiscalYearID, m.Name, m.Code,
		m.StartDate, m.EndDate, m.IsActive, m.IsLocked,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: period code %s", domain.ErrDuplicateCode, period.Code)
		}
		return apperrors.NewAppError(500, "failed to insert fiscal period "+m.FiscalPeriodID, err)
	}
	return nil
}

func (r *PgxFiscalRepository) FindFiscalPeriodByID(ctx context.Context, tenantID, fiscalPeriodID string) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + fiscalPeriodColumns + ` FROM fiscal_periods WHERE tenant_id = $1 AND fiscal_period_id = $2;`

	m, err := scanFiscalPeriod(r.Pool.QueryRow(ctx, query, tenantID, fiscalPeriodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: fiscal period %s", apperrors.ErrNotFound, fiscalPeriodID)
		}
		return nil, apperrors.NewAppError(500, "failed to query fiscal period "+fiscalPeriodID, err)
	}

	period := mapping.ToDomainFiscalPeriod(m)
	return &period, nil
}

func (r *PgxFiscalRepository) ListFiscalPeriods(ctx context.Context, tenantID, fiscalYearID string) ([]domain.FiscalPeriod, error) {
	query := `SELECT ` + fiscalPeriodColumns + ` FROM fiscal_periods WHERE tenant_id = $1 AND fiscal_year_id = $2 ORDER BY start_date;`

	rows, err := r.Pool.Query(ctx, query, tenantID, fiscalYearID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fiscal periods", err)
	}
	defer rows.Close()

	var ms []models.FiscalPeriod
	for rows.Next() {
		m, err := scanFiscalPeriod(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan fiscal period row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate fiscal period rows", err)
	}
	return mapping.ToDomainFiscalPeriodSlice(ms), nil
}

// FindPeriodContaining relies on periods within a tenant being
// non-overlapping, so at most one row matches.
func (r *PgxFiscalRepository) FindPeriodContaining(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + fiscalPeriodColumns + ` FROM fiscal_periods WHERE tenant_id = $1 AND start_date <= $2 AND end_date >= $2 LIMIT 1;`

	m, err := scanFiscalPeriod(r.Pool.QueryRow(ctx, query, tenantID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no period contains %s", apperrors.ErrNotFound, date.Format("2006-01-02"))
		}
		return nil, apperrors.NewAppError(500, "failed to query period by date", err)
	}

	period := mapping.ToDomainFiscalPeriod(m)
	return &period, nil
}

func (r *PgxFiscalRepository) HasOverlappingPeriod(ctx context.Context, tenantID, fiscalYearID string, start, end time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM fiscal_periods
			WHERE tenant_id = $1 AND fiscal_year_id = $2
			  AND start_date <= $4 AND end_date >= $3
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, tenantID, fiscalYearID, start, end).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check period overlap", err)
	}
	return exists, nil
}

func (r *PgxFiscalRepository) LockPeriod(ctx context.Context, tenantID, fiscalPeriodID, userID string, now time.Time) error {
	query := `
		UPDATE fiscal_periods
		SET is_locked = TRUE, last_updated_at = $1, last_updated_by = $2
		WHERE tenant_id = $3 AND fiscal_period_id = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, now, userID, tenantID, fiscalPeriodID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock fiscal period "+fiscalPeriodID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: fiscal period %s", apperrors.ErrNotFound, fiscalPeriodID)
	}
	return nil
}
