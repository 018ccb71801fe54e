package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbooks-io/finbooks/internal/apperrors"
	"github.com/finbooks-io/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks-io/finbooks/internal/core/ports/repositories"
	portssvc "github.com/finbooks-io/finbooks/internal/core/ports/services"
	"github.com/finbooks-io/finbooks/internal/dto"
)

// exchangeRateService manages rates into the tenant base currency.
type exchangeRateService struct {
	BaseService
	rateRepo    portsrepo.ExchangeRateRepository
	currencySvc portssvc.CurrencyService
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepository, currencySvc portssvc.CurrencyService) portssvc.ExchangeRateService {
	return &exchangeRateService{rateRepo: rateRepo, currencySvc: currencySvc}
}

var _ portssvc.ExchangeRateService = (*exchangeRateService)(nil)

// CreateExchangeRate registers a rate from a foreign currency into the tenant
// base currency, effective from the given date until superseded.
func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, tenantID string, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	if !req.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}

	base, err := s.currencySvc.ResolveBaseCurrency(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base currency: %w", err)
	}
	if req.FromCurrencyCode == base.Code {
		return nil, fmt.Errorf("%w: cannot register a rate from the base currency to itself", apperrors.ErrValidation)
	}
	if _, err := s.currencySvc.GetCurrencyByCode(ctx, tenantID, req.FromCurrencyCode); err != nil {
		return nil, fmt.Errorf("unknown source currency %s: %w", req.FromCurrencyCode, err)
	}

	now := time.Now().UTC()
	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		TenantID:         tenantID,
		FromCurrencyCode: req.FromCurrencyCode,
		ToCurrencyCode:   base.Code,
		Rate:             req.Rate,
		DateEffective:    req.DateEffective,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "Failed to save exchange rate", slog.String("from", req.FromCurrencyCode))
		return nil, err
	}
	return &rate, nil
}

// RateAt returns the rate from currencyCode into the base currency as of
// date. The base currency rates at one by definition.
func (s *exchangeRateService) RateAt(ctx context.Context, tenantID, currencyCode string, date time.Time) (decimal.Decimal, error) {
	base, err := s.currencySvc.ResolveBaseCurrency(ctx, tenantID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to resolve base currency: %w", err)
	}
	if currencyCode == base.Code {
		return decimal.NewFromInt(1), nil
	}

	rate, err := s.rateRepo.FindRateAt(ctx, tenantID, currencyCode, date)
	if errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, fmt.Errorf("%w: no rate from %s to %s on or before %s", domain.ErrRateUnavailable, currencyCode, base.Code, date.Format("2006-01-02"))
	}
	if err != nil {
		return decimal.Zero, err
	}
	return rate.Rate, nil
}
