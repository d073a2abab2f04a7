package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the direction of a transaction.
type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

// Valid reports whether the kind is one of the two supported values.
func (k TransactionKind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// PaymentMethodRef points at exactly one bank account or credit card.
type PaymentMethodRef struct {
	ID     string
	IsCard bool
}

// Transaction is a single income or expense entry in the ledger.
type Transaction struct {
	ID            string
	OccurredAt    time.Time
	Amount        decimal.Decimal
	Kind          TransactionKind
	Category      string
	Note          string
	PaymentMethod PaymentMethodRef

	// Display fields resolved at read time from whichever table the
	// IsCard flag selects. Empty when the referenced method is missing.
	PaymentMethodName   string
	PaymentMethodNumber string
	BankName            string

	CreatedAt time.Time
}

// SignedAmount returns the transaction's contribution to its payment
// method's balance: +amount for income, -amount for expense.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Kind == KindIncome {
		return t.Amount
	}

	return t.Amount.Neg()
}

// Validate checks the invariants the reconciliation engine assumes hold.
func (t *Transaction) Validate() error {
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if t.PaymentMethod.ID == "" {
		return ErrPaymentMethodRequired
	}

	return nil
}

// TransactionPatch is a partial update of a transaction. Nil fields keep
// their prior values.
type TransactionPatch struct {
	OccurredAt    *time.Time
	Amount        *decimal.Decimal
	Kind          *TransactionKind
	Category      *string
	Note          *string
	PaymentMethod *PaymentMethodRef
}

// IsZero reports whether the patch changes nothing.
func (p TransactionPatch) IsZero() bool {
	return p.OccurredAt == nil &&
		p.Amount == nil &&
		p.Kind == nil &&
		p.Category == nil &&
		p.Note == nil &&
		p.PaymentMethod == nil
}

// ApplyTo returns a copy of tx with the patch's non-nil fields applied.
func (p TransactionPatch) ApplyTo(tx Transaction) Transaction {
	if p.OccurredAt != nil {
		tx.OccurredAt = *p.OccurredAt
	}

	if p.Amount != nil {
		tx.Amount = *p.Amount
	}

	if p.Kind != nil {
		tx.Kind = *p.Kind
	}

	if p.Category != nil {
		tx.Category = *p.Category
	}

	if p.Note != nil {
		tx.Note = *p.Note
	}

	if p.PaymentMethod != nil {
		tx.PaymentMethod = *p.PaymentMethod
	}

	return tx
}
