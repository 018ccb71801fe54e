package domain

// Currency represents a supported currency for a tenant.
// Exactly one currency per tenant carries the base flag; cross-currency
// journal lines are converted into it for balance rollups.
type Currency struct {
	CurrencyID     string `json:"currencyID"`   // Primary key (UUID)
	TenantID       string `json:"tenantID"`     // FK -> tenants (NOT NULL)
	Code           string `json:"code"`         // ISO code, e.g. "USD"
	Name           string `json:"name"`         // e.g. "US Dollar"
	Symbol         string `json:"symbol"`       // e.g. "$"
	DecimalPlaces  int32  `json:"decimalPlaces"`
	IsBaseCurrency bool   `json:"isBaseCurrency"`
	IsActive       bool   `json:"isActive"`
	AuditFields
}
