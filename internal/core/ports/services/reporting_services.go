package services

import (
	"context"
	"time"

	"github.com/finbooks-io/finbooks/internal/core/domain"
	"github.com/finbooks-io/finbooks/internal/dto"
)

// ReportingService builds read-only financial views from posted entries.
// Reports are pure derivations; recomputing them is always possible and no
// report is a source of truth.
type ReportingService interface {
	TrialBalance(ctx context.Context, tenantID string, asOf time.Time) (*dto.TrialBalanceResponse, error)
	GeneralLedger(ctx context.Context, tenantID, accountID string, from, to time.Time) (*dto.GeneralLedgerResponse, error)
	ProfitAndLoss(ctx context.Context, tenantID string, from, to time.Time) (*domain.PAndLReport, error)
	BalanceSheet(ctx context.Context, tenantID string, asOf time.Time) (*domain.BalanceSheetReport, error)
}
