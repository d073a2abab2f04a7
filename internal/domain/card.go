package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditCard holds a running credit balance. The sign convention matches
// bank accounts: income increases CreditBalance, expense decreases it.
// CreditBalance is mutated only through the reconciliation engine.
type CreditCard struct {
	ID             string
	Name           string
	CardNumber     string
	CreditLimit    decimal.Decimal
	CreditBalance  decimal.Decimal
	InitialBalance decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CreditCardPatch is a partial update of the user-owned card fields.
type CreditCardPatch struct {
	Name        *string
	CardNumber  *string
	CreditLimit *decimal.Decimal
}

// ApplyTo returns a copy of c with the patch applied.
func (p CreditCardPatch) ApplyTo(c CreditCard) CreditCard {
	if p.Name != nil {
		c.Name = *p.Name
	}

	if p.CardNumber != nil {
		c.CardNumber = *p.CardNumber
	}

	if p.CreditLimit != nil {
		c.CreditLimit = *p.CreditLimit
	}

	return c
}
