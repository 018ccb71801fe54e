package services

import (
	"context"
	"time"

	"github.com/finbooks-io/finbooks/internal/core/domain"
	"github.com/finbooks-io/finbooks/internal/dto"
	"github.com/shopspring/decimal"
)

// CurrencyService manages tenant currencies and the base-currency invariant.
type CurrencyService interface {
	CreateCurrency(ctx context.Context, tenantID string, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)
	GetCurrencyByCode(ctx context.Context, tenantID, code string) (*domain.Currency, error)
	GetCurrenciesByCodes(ctx context.Context, tenantID string, codes []string) (map[string]domain.Currency, error)
	ListCurrencies(ctx context.Context, tenantID string) ([]domain.Currency, error)
	// SetBaseCurrency atomically moves the base flag; exactly one base
	// currency exists per tenant at any time.
	SetBaseCurrency(ctx context.Context, tenantID, currencyID, userID string) error
	// ResolveBaseCurrency returns the tenant's base currency.
	ResolveBaseCurrency(ctx context.Context, tenantID string) (*domain.Currency, error)
}

// ExchangeRateService manages rates toward the tenant base currency and
// converts line amounts for balance rollups.
type ExchangeRateService interface {
	CreateExchangeRate(ctx context.Context, tenantID string, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)
	// RateAt returns the conversion rate from the given currency into the
	// tenant base currency as of date. The base currency itself always rates
	// at one. Missing rates fail with domain.ErrRateUnavailable.
	RateAt(ctx context.Context, tenantID, currencyCode string, date time.Time) (decimal.Decimal, error)
}
