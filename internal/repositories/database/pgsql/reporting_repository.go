package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finbooks-io/finbooks/internal/apperrors"
	"github.com/finbooks-io/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks-io/finbooks/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates the read-side aggregation repository.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) GetTrialBalanceData(ctx context.Context, tenantID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(CASE WHEN l.debit > 0 THEN l.amount_base ELSE 0 END), 0) AS debit,
		       COALESCE(SUM(CASE WHEN l.credit > 0 THEN l.amount_base ELSE 0 END), 0) AS credit
		FROM accounts a
		JOIN journal_entry_lines l ON l.account_id = a.account_id
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE a.tenant_id = $1 AND e.status = 'POSTED' AND e.entry_date <= $2
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance data", err)
	}
	defer rows.Close()

	var result []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(&row.AccountID, &row.AccountCode, &row.AccountName, &row.AccountType, &row.Debit, &row.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate trial balance rows", err)
	}
	return result, nil
}

func (r *PgxReportingRepository) GetGeneralLedgerRows(ctx context.Context, tenantID, accountID string, from, to time.Time) ([]domain.GeneralLedgerRow, error) {
	query := `
		SELECT e.entry_id, e.entry_number, e.entry_date, l.description, l.debit, l.credit
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.tenant_id = $1 AND l.account_id = $2 AND e.status = 'POSTED'
		  AND e.entry_date >= $3 AND e.entry_date <= $4
		ORDER BY e.entry_date, e.entry_number, l.line_number;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, accountID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query general ledger rows", err)
	}
	defer rows.Close()

	var result []domain.GeneralLedgerRow
	for rows.Next() {
		var row domain.GeneralLedgerRow
		if err := rows.Scan(&row.EntryID, &row.EntryNumber, &row.EntryDate, &row.Description, &row.Debit, &row.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan general ledger row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate general ledger rows", err)
	}
	return result, nil
}

// GetAccountOpeningBalance signs the sum by the account's normal side, so a
// debit-normal account with more debits than credits opens positive.
func (r *PgxReportingRepository) GetAccountOpeningBalance(ctx context.Context, tenantID, accountID string, before time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(
		       CASE WHEN a.account_type IN ('ASSET', 'EXPENSE')
		            THEN l.debit - l.credit
		            ELSE l.credit - l.debit
		       END), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE e.tenant_id = $1 AND l.account_id = $2 AND e.status = 'POSTED'
		  AND e.entry_date < $3;
	`
	var balance decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, tenantID, accountID, before).Scan(&balance); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to query opening balance for account "+accountID, err)
	}
	return balance, nil
}

// accountAmountsByType aggregates net amounts per account for the given
// account types, signed by each type's normal side.
func (r *PgxReportingRepository) accountAmountsByType(ctx context.Context, tenantID string, from, to time.Time, types []string) (map[string][]domain.AccountAmount, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(
		       CASE WHEN a.account_type IN ('ASSET', 'EXPENSE')
		            THEN l.debit - l.credit
		            ELSE l.credit - l.debit
		       END), 0) AS net_amount
		FROM accounts a
		JOIN journal_entry_lines l ON l.account_id = a.account_id
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE a.tenant_id = $1 AND e.status = 'POSTED'
		  AND e.entry_date >= $2 AND e.entry_date <= $3
		  AND a.account_type = ANY($4)
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, from, to, types)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account amounts", err)
	}
	defer rows.Close()

	result := make(map[string][]domain.AccountAmount, len(types))
	for rows.Next() {
		var amount domain.AccountAmount
		var accountType string
		if err := rows.Scan(&amount.AccountID, &amount.AccountCode, &amount.Name, &accountType, &amount.NetAmount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account amount row", err)
		}
		result[accountType] = append(result[accountType], amount)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate account amount rows", err)
	}
	return result, nil
}

func (r *PgxReportingRepository) GetProfitAndLossData(ctx context.Context, tenantID string, from, to time.Time) (revenue, expenses []domain.AccountAmount, err error) {
	byType, err := r.accountAmountsByType(ctx, tenantID, from, to, []string{string(domain.Revenue), string(domain.Expense)})
	if err != nil {
		return nil, nil, err
	}
	return byType[string(domain.Revenue)], byType[string(domain.Expense)], nil
}

func (r *PgxReportingRepository) GetBalanceSheetData(ctx context.Context, tenantID string, asOf time.Time) (assets, liabilities, equity []domain.AccountAmount, err error) {
	// A balance sheet is cumulative, so the range opens at the zero time.
	byType, err := r.accountAmountsByType(ctx, tenantID, time.Time{}, asOf, []string{string(domain.Asset), string(domain.Liability), string(domain.Equity)})
	if err != nil {
		return nil, nil, nil, err
	}
	return byType[string(domain.Asset)], byType[string(domain.Liability)], byType[string(domain.Equity)], nil
}
