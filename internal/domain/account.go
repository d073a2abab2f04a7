package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies a bank account.
type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCredit     AccountType = "credit"
	AccountInvestment AccountType = "investment"
)

// Valid reports whether the account type is a supported value.
func (t AccountType) Valid() bool {
	switch t {
	case AccountChecking, AccountSavings, AccountCredit, AccountInvestment:
		return true
	}

	return false
}

// BankAccount holds a running balance. Balance is mutated only through the
// reconciliation engine; every other field is owned by direct user edits.
type BankAccount struct {
	ID             string
	Name           string
	AccountNumber  string
	BankName       string
	Type           AccountType
	Balance        decimal.Decimal
	InitialBalance decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BankAccountPatch is a partial update of the user-owned account fields.
type BankAccountPatch struct {
	Name          *string
	AccountNumber *string
	BankName      *string
	Type          *AccountType
}

// ApplyTo returns a copy of a with the patch applied.
func (p BankAccountPatch) ApplyTo(a BankAccount) BankAccount {
	if p.Name != nil {
		a.Name = *p.Name
	}

	if p.AccountNumber != nil {
		a.AccountNumber = *p.AccountNumber
	}

	if p.BankName != nil {
		a.BankName = *p.BankName
	}

	if p.Type != nil {
		a.Type = *p.Type
	}

	return a
}
