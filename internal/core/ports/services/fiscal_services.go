package services

import (
	"context"
	"time"

	"github.com/finbooks-io/finbooks/internal/core/domain"
	"github.com/finbooks-io/finbooks/internal/dto"
)

// FiscalService manages fiscal years and periods and resolves entry dates
// into periods.
type FiscalService interface {
	CreateFiscalYear(ctx context.Context, tenantID string, req dto.CreateFiscalYearRequest, creatorUserID string) (*domain.FiscalYear, error)
	GetFiscalYearByID(ctx context.Context, tenantID, fiscalYearID string) (*domain.FiscalYear, error)
	ListFiscalYears(ctx context.Context, tenantID string) ([]domain.FiscalYear, error)
	CloseFiscalYear(ctx context.Context, tenantID, fiscalYearID, userID string) error

	// CreateFiscalPeriod validates the period against the year bounds
	// (domain.ErrPeriodOutOfRange) and against sibling periods
	// (domain.ErrPeriodOverlap).
	CreateFiscalPeriod(ctx context.Context, tenantID, fiscalYearID string, req dto.CreateFiscalPeriodRequest, creatorUserID string) (*domain.FiscalPeriod, error)
	ListFiscalPeriods(ctx context.Context, tenantID, fiscalYearID string) ([]domain.FiscalPeriod, error)
	GetFiscalPeriodByID(ctx context.Context, tenantID, fiscalPeriodID string) (*domain.FiscalPeriod, error)

	// ResolvePeriod returns the period containing date, or
	// domain.ErrNoPeriodFound.
	ResolvePeriod(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error)

	// LockPeriod marks a period locked. Idempotent; posted entries in the
	// period remain queryable.
	LockPeriod(ctx context.Context, tenantID, fiscalPeriodID, userID string) error
}
