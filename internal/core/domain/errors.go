package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel errors shared by services and repositories. Handlers map these to
// HTTP statuses; they are never downgraded to log lines.
var (
	ErrNoPeriodFound        = errors.New("no fiscal period contains the entry date")
	ErrPeriodOverlap        = errors.New("fiscal period overlaps an existing period")
	ErrPeriodOutOfRange     = errors.New("fiscal period lies outside the fiscal year")
	ErrPeriodLocked         = errors.New("fiscal period is locked")
	ErrFiscalYearClosed     = errors.New("fiscal year is closed")
	ErrEntryAlreadyPosted   = errors.New("journal entry is already posted")
	ErrCrossTenantReference = errors.New("referenced resource belongs to a different tenant")
	ErrDuplicateCode        = errors.New("code already exists for tenant")
	ErrInvalidHierarchy     = errors.New("invalid account hierarchy")
	ErrAccountReferenced    = errors.New("account is referenced by journal lines")
	ErrRateUnavailable      = errors.New("no exchange rate available")
	ErrTooFewLines          = errors.New("journal entry must have at least two lines")
)

// UnbalancedLineError reports a line that is not exactly one of debit/credit.
type UnbalancedLineError struct {
	Line int // 0-based index into the submitted line set
}

func (e UnbalancedLineError) Error() string {
	return fmt.Sprintf("line %d must have exactly one of debit or credit strictly positive", e.Line)
}

// ImbalancedEntryError reports an entry whose debit and credit totals differ
// beyond the balance tolerance. It carries both totals for diagnostics.
type ImbalancedEntryError struct {
	Debits  decimal.Decimal
	Credits decimal.Decimal
}

func (e ImbalancedEntryError) Error() string {
	return fmt.Sprintf("entry does not balance: debits %s, credits %s", e.Debits.StringFixed(2), e.Credits.StringFixed(2))
}
