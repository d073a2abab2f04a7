package domain

import "errors"

var (
	// Payment method errors
	ErrAccountNotFound       = errors.New("bank account not found")
	ErrCardNotFound          = errors.New("credit card not found")
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	ErrPaymentMethodRequired = errors.New("payment method is required")

	// Transaction errors
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidKind         = errors.New("kind must be income or expense")

	// Category errors
	ErrUnknownCategory   = errors.New("category is not registered for this kind")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrCategoryNotFound  = errors.New("category not found")

	// Account errors
	ErrInvalidAccountType = errors.New("invalid account type")
)
