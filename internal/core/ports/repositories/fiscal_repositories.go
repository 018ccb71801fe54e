package repositories

import (
	"context"
	"time"

	"github.com/finbooks-io/finbooks/internal/core/domain"
)

// FiscalRepository defines persistence operations for the fiscal calendar.
type FiscalRepository interface {
	// SaveFiscalYear inserts a new fiscal year.
	SaveFiscalYear(ctx context.Context, year domain.FiscalYear) error

	// FindFiscalYearByID retrieves a fiscal year, tenant scoped.
	FindFiscalYearByID(ctx context.Context, tenantID, fiscalYearID string) (*domain.FiscalYear, error)

	// ListFiscalYears returns a tenant's fiscal years ordered by start date.
	ListFiscalYears(ctx context.Context, tenantID string) ([]domain.FiscalYear, error)

	// UpdateFiscalYear persists mutable year fields (close flag).
	UpdateFiscalYear(ctx context.Context, year domain.FiscalYear) error

	// SaveFiscalPeriod inserts a new fiscal period.
	SaveFiscalPeriod(ctx context.Context, period domain.FiscalPeriod) error

	// FindFiscalPeriodByID retrieves a period, tenant scoped.
	FindFiscalPeriodByID(ctx context.Context, tenantID, fiscalPeriodID string) (*domain.FiscalPeriod, error)

	// ListFiscalPeriods returns a year's periods ordered by start date.
	ListFiscalPeriods(ctx context.Context, tenantID, fiscalYearID string) ([]domain.FiscalPeriod, error)

	// FindPeriodContaining returns the period whose range contains date,
	// or apperrors.ErrNotFound when no period matches.
	FindPeriodContaining(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error)

	// HasOverlappingPeriod reports whether any period of the year intersects
	// [start, end].
	HasOverlappingPeriod(ctx context.Context, tenantID, fiscalYearID string, start, end time.Time) (bool, error)

	// LockPeriod sets the period's locked flag. Idempotent.
	LockPeriod(ctx context.Context, tenantID, fiscalPeriodID, userID string, now time.Time) error
}
