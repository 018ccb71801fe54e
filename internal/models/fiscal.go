package models

import "time"

// FiscalYear is the persistence shape of a fiscal year row.
type FiscalYear struct {
	FiscalYearID string    `db:"fiscal_year_id"`
	TenantID     string    `db:"tenant_id"`
	Name         string    `db:"name"`
	StartDate    time.Time `db:"start_date"`
	EndDate      time.Time `db:"end_date"`
	IsActive     bool      `db:"is_active"`
	IsClosed     bool      `db:"is_closed"`
	AuditFields
}

// FiscalPeriod is the persistence shape of a fiscal period row.
type FiscalPeriod struct {
	FiscalPeriodID string    `db:"fiscal_period_id"`
	TenantID       string    `db:"tenant_id"`
	FiscalYearID   string    `db:"fiscal_year_id"`
	Name           string    `db:"name"`
	Code           string    `db:"code"`
	StartDate      time.Time `db:"start_date"`
	EndDate        time.Time `db:"end_date"`
	IsActive       bool      `db:"is_active"`
	IsLocked       bool      `db:"is_locked"`
	AuditFields
}
