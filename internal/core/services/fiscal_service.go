package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks-io/finbooks/internal/apperrors"
	"github.com/finbooks-io/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks-io/finbooks/internal/core/ports/repositories"
	portssvc "github.com/finbooks-io/finbooks/internal/core/ports/services"
	"github.com/finbooks-io/finbooks/internal/dto"
)

// fiscalService manages fiscal years and periods.
type fiscalService struct {
	BaseService
	fiscalRepo portsrepo.FiscalRepository
}

// NewFiscalService creates a new FiscalService.
func NewFiscalService(fiscalRepo portsrepo.FiscalRepository) portssvc.FiscalService {
	return &fiscalService{fiscalRepo: fiscalRepo}
}

var _ portssvc.FiscalService = (*fiscalService)(nil)

func (s *fiscalService) CreateFiscalYear(ctx context.Context, tenantID string, req dto.CreateFiscalYearRequest, creatorUserID string) (*domain.FiscalYear, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("%w: fiscal year end date must be after start date", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	year := domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		TenantID:     tenantID,
		Name:         req.Name,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		IsActive:     true,
		IsClosed:     false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.fiscalRepo.SaveFiscalYear(ctx, year); err != nil {
		s.LogError(ctx, err, "Failed to save fiscal year", slog.String("name", req.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Fiscal year created", slog.String("fiscal_year_id", year.FiscalYearID))
	return &year, nil
}

func (s *fiscalService) GetFiscalYearByID(ctx context.Context, tenantID, fiscalYearID string) (*domain.FiscalYear, error) {
	return s.fiscalRepo.FindFiscalYearByID(ctx, tenantID, fiscalYearID)
}

func (s *fiscalService) ListFiscalYears(ctx context.Context, tenantID string) ([]domain.FiscalYear, error) {
	return s.fiscalRepo.ListFiscalYears(ctx, tenantID)
}

// CloseFiscalYear marks a year closed. Closing is permanent; no entry can be
// posted into any of its periods afterwards.
func (s *fiscalService) CloseFiscalYear(ctx context.Context, tenantID, fiscalYearID, userID string) error {
	year, err := s.fiscalRepo.FindFiscalYearByID(ctx, tenantID, fiscalYearID)
	if err != nil {
		return err
	}
	if year.IsClosed {
		return nil
	}

	year.IsClosed = true
	year.LastUpdatedAt = time.Now().UTC()
	year.LastUpdatedBy = userID

	if err := s.fiscalRepo.UpdateFiscalYear(ctx, *year); err != nil {
		s.LogError(ctx, err, "Failed to close fiscal year", slog.String("fiscal_year_id", fiscalYearID))
		return err
	}
	s.LogInfo(ctx, "Fiscal year closed", slog.String("fiscal_year_id", fiscalYearID))
	return nil
}

// CreateFiscalPeriod validates a period against its year's bounds and against
// sibling periods before persisting it.
func (s *fiscalService) CreateFiscalPeriod(ctx context.Context, tenantID, fiscalYearID string, req dto.CreateFiscalPeriodRequest, creatorUserID string) (*domain.FiscalPeriod, error) {
	year, err := s.fiscalRepo.FindFiscalYearByID(ctx, tenantID, fiscalYearID)
	if err != nil {
		return nil, err
	}
	if year.IsClosed {
		return nil, fmt.Errorf("%w: fiscal year %s", domain.ErrFiscalYearClosed, fiscalYearID)
	}
	if !year.Contains(req.StartDate) || !year.Contains(req.EndDate) {
		return nil, fmt.Errorf("%w: period [%s, %s] exceeds year [%s, %s]",
			domain.ErrPeriodOutOfRange,
			req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"),
			year.StartDate.Format("2006-01-02"), year.EndDate.Format("2006-01-02"))
	}

	overlaps, err := s.fiscalRepo.HasOverlappingPeriod(ctx, tenantID, fiscalYearID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check period overlap: %w", err)
	}
	if overlaps {
		return nil, fmt.Errorf("%w: [%s, %s]", domain.ErrPeriodOverlap,
			req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"))
	}

	now := time.Now().UTC()
	period := domain.FiscalPeriod{
		FiscalPeriodID: uuid.NewString(),
		TenantID:       tenantID,
		FiscalYearID:   fiscalYearID,
		Name:           req.Name,
		Code:           req.Code,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		IsActive:       true,
		IsLocked:       false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.fiscalRepo.SaveFiscalPeriod(ctx, period); err != nil {
		s.LogError(ctx, err, "Failed to save fiscal period", slog.String("code", req.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Fiscal period created", slog.String("fiscal_period_id", period.FiscalPeriodID))
	return &period, nil
}

func (s *fiscalService) ListFiscalPeriods(ctx context.Context, tenantID, fiscalYearID string) ([]domain.FiscalPeriod, error) {
	return s.fiscalRepo.ListFiscalPeriods(ctx, tenantID, fiscalYearID)
}

func (s *fiscalService) GetFiscalPeriodByID(ctx context.Context, tenantID, fiscalPeriodID string) (*domain.FiscalPeriod, error) {
	return s.fiscalRepo.FindFiscalPeriodByID(ctx, tenantID, fiscalPeriodID)
}

// ResolvePeriod maps a date onto the period containing it.
func (s *fiscalService) ResolvePeriod(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error) {
	period, err := s.fiscalRepo.FindPeriodContaining(ctx, tenantID, date)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("%w: no fiscal period contains %s", domain.ErrNoPeriodFound, date.Format("2006-01-02"))
	}
	if err != nil {
		return nil, err
	}
	return period, nil
}

// LockPeriod marks a period locked. Locking an already locked period is a
// no-op.
func (s *fiscalService) LockPeriod(ctx context.Context, tenantID, fiscalPeriodID, userID string) error {
	period, err := s.fiscalRepo.FindFiscalPeriodByID(ctx, tenantID, fiscalPeriodID)
	if err != nil {
		return err
	}
	if period.IsLocked {
		return nil
	}

	if err := s.fiscalRepo.LockPeriod(ctx, tenantID, fiscalPeriodID, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to lock fiscal period", slog.String("fiscal_period_id", fiscalPeriodID))
		return err
	}
	s.LogInfo(ctx, "Fiscal period locked", slog.String("fiscal_period_id", fiscalPeriodID))
	return nil
}
