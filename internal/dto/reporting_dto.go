package dto

import (
	"time"

	"github.com/finbooks-io/finbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceResponse wraps the trial balance rows with their totals.
// TotalDebit and TotalCredit are always equal within the balance tolerance;
// that identity is a corollary of the posting invariant.
type TrialBalanceResponse struct {
	AsOf        time.Time                `json:"asOf"`
	Rows        []domain.TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal          `json:"totalDebit"`
	TotalCredit decimal.Decimal          `json:"totalCredit"`
}

// GeneralLedgerResponse wraps an account's ledger rows with the opening
// balance the running balances start from.
type GeneralLedgerResponse struct {
	AccountID      string                    `json:"accountID"`
	From           time.Time                 `json:"from"`
	To             time.Time                 `json:"to"`
	OpeningBalance decimal.Decimal           `json:"openingBalance"`
	Rows           []domain.GeneralLedgerRow `json:"rows"`
}
