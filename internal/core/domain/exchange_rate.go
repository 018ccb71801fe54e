package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate holds the conversion rate from a currency into the tenant
// base currency, effective from a given date until superseded.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"` // Primary key (UUID)
	TenantID         string          `json:"tenantID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"` // The tenant base currency
	Rate             decimal.Decimal `json:"rate"`           // Strictly positive
	DateEffective    time.Time       `json:"dateEffective"`
	AuditFields
}
