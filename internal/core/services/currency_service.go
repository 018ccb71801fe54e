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

// currencyService manages tenant currencies.
type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepository
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepository) portssvc.CurrencyService {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencyService = (*currencyService)(nil)

// CreateCurrency persists a new currency. The tenant's first currency always
// becomes the base currency regardless of the request flag, so every tenant
// with at least one currency has exactly one base.
func (s *currencyService) CreateCurrency(ctx context.Context, tenantID string, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	markBase := req.IsBaseCurrency
	if !markBase {
		_, err := s.currencyRepo.FindBaseCurrency(ctx, tenantID)
		if errors.Is(err, apperrors.ErrNotFound) {
			markBase = true
		} else if err != nil {
			return nil, fmt.Errorf("failed to resolve base currency: %w", err)
		}
	}

	now := time.Now().UTC()
	currency := domain.Currency{
		CurrencyID:     uuid.NewString(),
		TenantID:       tenantID,
		Code:           req.Code,
		Name:           req.Name,
		Symbol:         req.Symbol,
		DecimalPlaces:  req.DecimalPlaces,
		IsBaseCurrency: markBase,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency, markBase); err != nil {
		s.LogError(ctx, err, "Failed to save currency", slog.String("code", req.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Currency created", slog.String("code", currency.Code), slog.Bool("base", markBase))
	return &currency, nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, tenantID, code string) (*domain.Currency, error) {
	return s.currencyRepo.FindCurrencyByCode(ctx, tenantID, code)
}

func (s *currencyService) GetCurrenciesByCodes(ctx context.Context, tenantID string, codes []string) (map[string]domain.Currency, error) {
	return s.currencyRepo.FindCurrenciesByCodes(ctx, tenantID, codes)
}

func (s *currencyService) ListCurrencies(ctx context.Context, tenantID string) ([]domain.Currency, error) {
	return s.currencyRepo.ListCurrencies(ctx, tenantID)
}

func (s *currencyService) SetBaseCurrency(ctx context.Context, tenantID, currencyID, userID string) error {
	if err := s.currencyRepo.SetBaseCurrency(ctx, tenantID, currencyID, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to set base currency", slog.String("currency_id", currencyID))
		return err
	}
	s.LogInfo(ctx, "Base currency changed", slog.String("currency_id", currencyID))
	return nil
}

func (s *currencyService) ResolveBaseCurrency(ctx context.Context, tenantID string) (*domain.Currency, error) {
	return s.currencyRepo.FindBaseCurrency(ctx, tenantID)
}
