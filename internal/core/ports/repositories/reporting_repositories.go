package repositories

import (
	"context"
	"time"

	"github.com/finbooks-io/finbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines the read-side aggregation queries. Every query
// filters on posted entries only; drafts are invisible to all reports.
type ReportingRepository interface {
	// GetTrialBalanceData returns per-account debit/credit sums over posted
	// lines with entry_date <= asOf. NetBalance is left zero; the service
	// signs it per normal balance side.
	GetTrialBalanceData(ctx context.Context, tenantID string, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// GetGeneralLedgerRows returns posted lines touching an account within
	// [from, to], ordered by entry date then entry number. RunningBalance is
	// left zero; the service computes it from the opening balance.
	GetGeneralLedgerRows(ctx context.Context, tenantID, accountID string, from, to time.Time) ([]domain.GeneralLedgerRow, error)

	// GetAccountOpeningBalance returns the signed balance of an account from
	// posted lines strictly before the given date, per normal balance side.
	GetAccountOpeningBalance(ctx context.Context, tenantID, accountID string, before time.Time) (decimal.Decimal, error)

	// GetProfitAndLossData returns net amounts for revenue and expense
	// accounts over posted lines with entry_date within [from, to].
	GetProfitAndLossData(ctx context.Context, tenantID string, from, to time.Time) (revenue, expenses []domain.AccountAmount, err error)

	// GetBalanceSheetData returns net amounts for asset, liability and equity
	// accounts over posted lines with entry_date <= asOf.
	GetBalanceSheetData(ctx context.Context, tenantID string, asOf time.Time) (assets, liabilities, equity []domain.AccountAmount, err error)
}
