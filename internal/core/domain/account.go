package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Account represents a ledger account in the chart of accounts.
// Balances are never stored on the account; they are derived by
// summing posted journal lines.
type Account struct {
	AccountID       string      `json:"accountID"`       // Primary key (UUID)
	TenantID        string      `json:"tenantID"`        // FK -> tenants (NOT NULL)
	Code            string      `json:"code"`            // Unique per tenant
	Name            string      `json:"name"`            // User-defined name
	AccountType     AccountType `json:"accountType"`     // ASSET, LIABILITY, etc.
	ParentAccountID string      `json:"parentAccountID"` // Nullable self-referencing FK
	DisplayOrder    int         `json:"displayOrder"`
	Description     string      `json:"description"`
	IsActive        bool        `json:"isActive"` // Soft-deactivate flag
	AuditFields
}

// IsDebitNormal reports whether the account's natural positive balance
// is expressed as a debit. Asset and expense accounts are debit-normal.
func (a Account) IsDebitNormal() bool {
	return a.AccountType == Asset || a.AccountType == Expense
}

// IsCreditNormal reports whether the account's natural positive balance
// is expressed as a credit.
func (a Account) IsCreditNormal() bool {
	return !a.IsDebitNormal()
}
