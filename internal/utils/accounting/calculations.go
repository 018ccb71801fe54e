package accounting

import (
	"github.com/finbooks-io/finbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the maximum permitted difference between an entry's
// debit and credit totals, in tenant base currency units. Multi-currency
// conversion can introduce sub-cent drift, so exact equality is not required.
// Every balance comparison in the engine goes through this constant.
var BalanceTolerance = decimal.New(1, -2) // 0.01

// WithinTolerance reports whether debits and credits are equal within
// BalanceTolerance.
func WithinTolerance(debits, credits decimal.Decimal) bool {
	return debits.Sub(credits).Abs().LessThanOrEqual(BalanceTolerance)
}

// SignedAmount applies the normal-balance sign convention to a line amount:
// a debit to a debit-normal account (asset/expense) increases its balance,
// a credit decreases it, and vice versa for credit-normal accounts.
func SignedAmount(line domain.JournalLine, accountType domain.AccountType) decimal.Decimal {
	amount := line.Amount()
	switch accountType {
	case domain.Asset, domain.Expense:
		if !line.IsDebit() {
			amount = amount.Neg()
		}
	case domain.Liability, domain.Equity, domain.Revenue:
		if line.IsDebit() {
			amount = amount.Neg()
		}
	}
	return amount
}

// ValidateLines enforces the per-line and whole-entry balance invariants:
// at least two lines, exactly one of debit/credit strictly positive per line,
// and totals balanced within BalanceTolerance. Line indexes in returned
// errors are 0-based over the given slice.
func ValidateLines(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return domain.ErrTooFewLines
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for i, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return domain.UnbalancedLineError{Line: i}
		}
		hasDebit := line.Debit.IsPositive()
		hasCredit := line.Credit.IsPositive()
		if hasDebit == hasCredit {
			// Both zero or both positive.
			return domain.UnbalancedLineError{Line: i}
		}
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}

	if !WithinTolerance(debits, credits) {
		return domain.ImbalancedEntryError{Debits: debits, Credits: credits}
	}
	return nil
}

// EntryTotals sums the debit and credit sides of a line set.
func EntryTotals(lines []domain.JournalLine) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	return debits, credits
}
