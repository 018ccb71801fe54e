package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the persistence shape of an exchange rate row.
type ExchangeRate struct {
	ExchangeRateID   string          `db:"exchange_rate_id"`
	TenantID         string          `db:"tenant_id"`
	FromCurrencyCode string          `db:"from_currency_code"`
	ToCurrencyCode   string          `db:"to_currency_code"`
	Rate             decimal.Decimal `db:"rate"`
	DateEffective    time.Time       `db:"date_effective"`
	AuditFields
}
