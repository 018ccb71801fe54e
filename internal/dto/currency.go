package dto

import (
	"time"

	"github.com/finbooks-io/finbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCurrencyRequest defines the JSON body for creating a currency.
type CreateCurrencyRequest struct {
	Code           string `json:"code" binding:"required,len=3,uppercase"`
	Name           string `json:"name" binding:"required,max=100"`
	Symbol         string `json:"symbol" binding:"required,max=5"`
	DecimalPlaces  int32  `json:"decimalPlaces" binding:"gte=0,lte=4"`
	IsBaseCurrency bool   `json:"isBaseCurrency"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyID     string `json:"currencyID"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	Symbol         string `json:"symbol"`
	DecimalPlaces  int32  `json:"decimalPlaces"`
	IsBaseCurrency bool   `json:"isBaseCurrency"`
	IsActive       bool   `json:"isActive"`
}

// ToCurrencyResponse converts a domain.Currency to its response DTO.
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyID:     c.CurrencyID,
		Code:           c.Code,
		Name:           c.Name,
		Symbol:         c.Symbol,
		DecimalPlaces:  c.DecimalPlaces,
		IsBaseCurrency: c.IsBaseCurrency,
		IsActive:       c.IsActive,
	}
}

// ToCurrencyResponses converts a slice of domain.Currency.
func ToCurrencyResponses(currencies []domain.Currency) []CurrencyResponse {
	responses := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		responses[i] = ToCurrencyResponse(&currencies[i])
	}
	return responses
}

// CreateExchangeRateRequest defines the JSON body for registering a rate
// toward the tenant base currency.
type CreateExchangeRateRequest struct {
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,len=3,uppercase"`
	Rate             decimal.Decimal `json:"rate" binding:"required"`
	DateEffective    time.Time       `json:"dateEffective" binding:"required"`
}

// ExchangeRateResponse defines the data returned for an exchange rate.
type ExchangeRateResponse struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to its response DTO.
func ToExchangeRateResponse(r *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:   r.ExchangeRateID,
		FromCurrencyCode: r.FromCurrencyCode,
		ToCurrencyCode:   r.ToCurrencyCode,
		Rate:             r.Rate,
		DateEffective:    r.DateEffective,
	}
}
