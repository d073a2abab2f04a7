package domain

import "github.com/shopspring/decimal"

// MonthlySummary aggregates one calendar month of the ledger. Balance is
// always Income minus Expense.
type MonthlySummary struct {
	Income       decimal.Decimal
	Expense      decimal.Decimal
	Balance      decimal.Decimal
	Transactions []*Transaction
}

// MonthData is one bucket of a yearly summary. Month is zero-based
// (0 = January) to match the fixed 12-element result callers index into.
type MonthData struct {
	Month   int
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// ZeroMonthlySummary returns an all-zero summary with no transactions.
func ZeroMonthlySummary() MonthlySummary {
	return MonthlySummary{
		Income:       decimal.Zero,
		Expense:      decimal.Zero,
		Balance:      decimal.Zero,
		Transactions: []*Transaction{},
	}
}

// ZeroYear returns twelve zero-filled month buckets.
func ZeroYear() []MonthData {
	months := make([]MonthData, 12)
	for i := range months {
		months[i] = MonthData{
			Month:   i,
			Income:  decimal.Zero,
			Expense: decimal.Zero,
			Balance: decimal.Zero,
		}
	}

	return months
}
