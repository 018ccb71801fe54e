package repositories

import (
	"context"
	"time"

	"github.com/finbooks-io/finbooks/internal/core/domain"
)

// CurrencyRepository defines persistence operations for tenant currencies.
type CurrencyRepository interface {
	// SaveCurrency inserts a new currency. When markBase is true the insert and
	// the clearing of any previous base flag happen in one transaction.
	SaveCurrency(ctx context.Context, currency domain.Currency, markBase bool) error

	// FindCurrencyByCode retrieves a currency by ISO code, tenant scoped.
	FindCurrencyByCode(ctx context.Context, tenantID, code string) (*domain.Currency, error)

	// FindCurrenciesByCodes retrieves a batch of currencies keyed by code.
	FindCurrenciesByCodes(ctx context.Context, tenantID string, codes []string) (map[string]domain.Currency, error)

	// ListCurrencies returns all currencies for a tenant.
	ListCurrencies(ctx context.Context, tenantID string) ([]domain.Currency, error)

	// FindBaseCurrency returns the tenant's base currency, or apperrors.ErrNotFound.
	FindBaseCurrency(ctx context.Context, tenantID string) (*domain.Currency, error)

	// SetBaseCurrency atomically moves the base flag to the given currency.
	SetBaseCurrency(ctx context.Context, tenantID, currencyID, userID string, now time.Time) error
}

// ExchangeRateRepository defines persistence operations for exchange rates.
type ExchangeRateRepository interface {
	// SaveExchangeRate inserts a new rate row.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error

	// FindRateAt returns the latest rate from the given currency into the
	// tenant base currency effective on or before date, or apperrors.ErrNotFound.
	FindRateAt(ctx context.Context, tenantID, fromCurrencyCode string, date time.Time) (*domain.ExchangeRate, error)
}
