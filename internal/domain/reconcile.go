package domain

import "github.com/shopspring/decimal"

// BalanceAdjustment is a single delta to apply to one payment method.
type BalanceAdjustment struct {
	Method PaymentMethodRef
	Delta  decimal.Decimal
}

// AdjustmentsForChange computes the balance deltas needed to move the
// ledger from the before snapshot to the after snapshot of a transaction.
// A nil before means create, a nil after means delete.
//
// For an update the sub-cases are tested in order: if the payment method
// changed, the old effect is reversed in full against the old method and
// the new effect applied in full against the new one, so no cross-account
// leakage is possible even when amount or kind changed too. If only amount
// or kind changed, a single net delta goes to the shared method. If the
// effect is unchanged, no adjustment is emitted.
func AdjustmentsForChange(before, after *Transaction) []BalanceAdjustment {
	switch {
	case before == nil && after == nil:
		return nil

	case before == nil:
		return []BalanceAdjustment{{
			Method: after.PaymentMethod,
			Delta:  after.SignedAmount(),
		}}

	case after == nil:
		return []BalanceAdjustment{{
			Method: before.PaymentMethod,
			Delta:  before.SignedAmount().Neg(),
		}}
	}

	oldEffect := before.SignedAmount()
	newEffect := after.SignedAmount()

	if before.PaymentMethod != after.PaymentMethod {
		return []BalanceAdjustment{
			{Method: before.PaymentMethod, Delta: oldEffect.Neg()},
			{Method: after.PaymentMethod, Delta: newEffect},
		}
	}

	net := newEffect.Sub(oldEffect)
	if net.IsZero() {
		return nil
	}

	return []BalanceAdjustment{{
		Method: before.PaymentMethod,
		Delta:  net,
	}}
}
