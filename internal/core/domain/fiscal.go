package domain

import "time"

// FiscalYear is a named, bounded date range that groups fiscal periods.
type FiscalYear struct {
	FiscalYearID string    `json:"fiscalYearID"` // Primary key (UUID)
	TenantID     string    `json:"tenantID"`
	Name         string    `json:"name"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	IsActive     bool      `json:"isActive"`
	IsClosed     bool      `json:"isClosed"`
	AuditFields
}

// Contains reports whether date falls inside the year's bounds (inclusive).
func (y FiscalYear) Contains(date time.Time) bool {
	return !date.Before(y.StartDate) && !date.After(y.EndDate)
}

// FiscalPeriod is a sub-range of a fiscal year. Periods within a year are
// non-overlapping; every posted journal entry is attributed to exactly one.
type FiscalPeriod struct {
	FiscalPeriodID string    `json:"fiscalPeriodID"` // Primary key (UUID)
	TenantID       string    `json:"tenantID"`
	FiscalYearID   string    `json:"fiscalYearID"`
	Name           string    `json:"name"`
	Code           string    `json:"code"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	IsActive       bool      `json:"isActive"`
	IsLocked       bool      `json:"isLocked"` // Locked periods refuse new postings and draft edits
	AuditFields
}

// Contains reports whether date falls inside the period's bounds (inclusive).
func (p FiscalPeriod) Contains(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}

// Overlaps reports whether the period's range intersects [start, end].
func (p FiscalPeriod) Overlaps(start, end time.Time) bool {
	return !p.StartDate.After(end) && !start.After(p.EndDate)
}
