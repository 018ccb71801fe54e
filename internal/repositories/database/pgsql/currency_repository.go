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

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(pool *pgxpool.Pool) portsrepo.CurrencyRepository {
	return &PgxCurrencyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CurrencyRepository = (*PgxCurrencyRepository)(nil)

const currencyColumns = `currency_id, tenant_id, code, name, symbol, decimal_places, is_base_currency, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanCurrency(row pgx.Row) (models.Currency, error) {
	var m models.Currency
	err := row.Scan(
		&m.CurrencyID, &m.TenantID, &m.Code, &m.Name, &m.Symbol,
		&m.DecimalPlaces, &m.IsBaseCurrency, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// SaveCurrency inserts a new currency. When markBase is true the previous
// base flag is cleared in the same transaction, keeping exactly one base
// currency per tenant.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency, markBase bool) error {
	m := mapping.ToModelCurrency(currency)
	m.IsBaseCurrency = markBase

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if markBase {
		clearQuery := `UPDATE currencies SET is_base_currency = FALSE, last_updated_at = $1, last_updated_by = $2 WHERE tenant_id = $3 AND is_base_currency;`
		if _, err := tx.Exec(ctx, clearQuery, m.LastUpdatedAt, m.LastUpdatedBy, m.TenantID); err != nil {
			return apperrors.NewAppError(500, "failed to clear base currency flag", err)
		}
	}

	insertQuery := `
		INSERT INTO currencies (currency_id, tenant_id, code, name, symbol, decimal_places, is_base_currency, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.CurrencyID, m.TenantID, m.Code, m.Name, m.Symbol,
		m.DecimalPlaces, m.IsBaseCurrency, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: currency %s", domain.ErrDuplicateCode, currency.Code)
		}
		return apperrors.NewAppError(500, "failed to insert currency "+m.Code, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, tenantID, code string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE tenant_id = $1 AND code = $2;`

	m, err := scanCurrency(r.Pool.QueryRow(ctx, query, tenantID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: currency %s", apperrors.ErrNotFound, code)
		}
		return nil, apperrors.NewAppError(500, "failed to query currency "+code, err)
	}

	currency := mapping.ToDomainCurrency(m)
	return &currency, nil
}

func (r *PgxCurrencyRepository) FindCurrenciesByCodes(ctx context.Context, tenantID string, codes []string) (map[string]domain.Currency, error) {
	if len(codes) == 0 {
		return map[string]domain.Currency{}, nil
	}

	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE tenant_id = $1 AND code = ANY($2);`

	rows, err := r.Pool.Query(ctx, query, tenantID, codes)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query currencies by codes", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Currency, len(codes))
	for rows.Next() {
		m, err := scanCurrency(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan currency row", err)
		}
		result[m.Code] = mapping.ToDomainCurrency(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate currency rows", err)
	}
	return result, nil
}

func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context, tenantID string) ([]domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE tenant_id = $1 ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query currencies", err)
	}
	defer rows.Close()

	var currencies []domain.Currency
	for rows.Next() {
		m, err := scanCurrency(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan currency row", err)
		}
		currencies = append(currencies, mapping.ToDomainCurrency(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate currency rows", err)
	}
	return currencies, nil
}

func (r *PgxCurrencyRepository) FindBaseCurrency(ctx context.Context, tenantID string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE tenant_id = $1 AND is_base_currency;`

	m, err := scanCurrency(r.Pool.QueryRow(ctx, query, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no base currency for tenant", apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to query base currency", err)
	}

	currency := mapping.ToDomainCurrency(m)
	return &currency, nil
}

// SetBaseCurrency moves the base flag to the given currency in one
// transaction.
func (r *PgxCurrencyRepository) SetBaseCurrency(ctx context.Context, tenantID, currencyID, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	clearQuery := `UPDATE currencies SET is_base_currency = FALSE, last_updated_at = $1, last_updated_by = $2 WHERE tenant_id = $3 AND is_base_currency;`
	if _, err := tx.Exec(ctx, clearQuery, now, userID, tenantID); err != nil {
		return apperrors.NewAppError(500, "failed to clear base currency flag", err)
	}

	setQuery := `UPDATE currencies SET is_base_currency = TRUE, last_updated_at = $1, last_updated_by = $2 WHERE tenant_id = $3 AND currency_id = $4;`
	tag, err := tx.Exec(ctx, setQuery, now, userID, tenantID, currencyID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to set base currency "+currencyID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: currency %s", apperrors.ErrNotFound, currencyID)
	}

	return r.Commit(ctx, tx)
}
