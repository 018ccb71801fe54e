package models

// Currency is the persistence shape of a tenant currency row.
type Currency struct {
	CurrencyID     string `db:"currency_id"`
	TenantID       string `db:"tenant_id"`
	Code           string `db:"code"`
	Name           string `db:"name"`
	Symbol         string `db:"symbol"`
	DecimalPlaces  int32  `db:"decimal_places"`
	IsBaseCurrency bool   `db:"is_base_currency"`
	IsActive       bool   `db:"is_active"`
	AuditFields
}
