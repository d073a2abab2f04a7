package domain

// Category is a (kind, name) label transactions are tagged with. The pair
// is unique; there are no further attributes.
type Category struct {
	Kind TransactionKind
	Name string
}

// DefaultCategories are seeded into an empty database.
var DefaultCategories = map[TransactionKind][]string{
	KindExpense: {"Food", "Transport", "Entertainment", "Bills", "Shopping", "Other"},
	KindIncome:  {"Salary", "Gifts", "Investments", "Side Hustle", "Other"},
}
