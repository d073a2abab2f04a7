package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/aman-soni-070202/my-finances/internal/domain"
	"github.com/aman-soni-070202/my-finances/internal/usecase"
)

// PaymentMethodRef identifies the bank account or credit card a
// transaction is charged against.
type PaymentMethodRef struct {
	ID     string `json:"id"`
	IsCard bool   `json:"is_card"`
}

// ToDomain converts to the domain reference.
func (r PaymentMethodRef) ToDomain() domain.PaymentMethodRef {
	return domain.PaymentMethodRef{
		ID:     r.ID,
		IsCard: r.IsCard,
	}
}

// CreateTransactionRequest represents a request to record a transaction.
type CreateTransactionRequest struct {
	OccurredAt    *time.Time       `json:"occurred_at,omitempty"`
	Amount        decimal.Decimal  `json:"amount"`
	Kind          string           `json:"kind"`
	Category      string           `json:"category"`
	Note          string           `json:"note,omitempty"`
	PaymentMethod PaymentMethodRef `json:"payment_method"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput() usecase.CreateTransactionInput {
	input := usecase.CreateTransactionInput{
		Amount:        r.Amount,
		Kind:          domain.TransactionKind(r.Kind),
		Category:      r.Category,
		Note:          r.Note,
		PaymentMethod: r.PaymentMethod.ToDomain(),
	}
	if r.OccurredAt != nil {
		input.OccurredAt = *r.OccurredAt
	}

	return input
}

// UpdateTransactionRequest represents a partial transaction update. Absent
// fields keep their prior values.
type UpdateTransactionRequest struct {
	OccurredAt    *time.Time        `json:"occurred_at,omitempty"`
	Amount        *decimal.Decimal  `json:"amount,omitempty"`
	Kind          *string           `json:"kind,omitempty"`
	Category      *string           `json:"category,omitempty"`
	Note          *string           `json:"note,omitempty"`
	PaymentMethod *PaymentMethodRef `json:"payment_method,omitempty"`
}

// ToPatch converts to a domain patch.
func (r *UpdateTransactionRequest) ToPatch() domain.TransactionPatch {
	patch := domain.TransactionPatch{
		OccurredAt: r.OccurredAt,
		Amount:     r.Amount,
		Category:   r.Category,
		Note:       r.Note,
	}
	if r.Kind != nil {
		kind := domain.TransactionKind(*r.Kind)
		patch.Kind = &kind
	}

	if r.PaymentMethod != nil {
		ref := r.PaymentMethod.ToDomain()
		patch.PaymentMethod = &ref
	}

	return patch
}

// CreateAccountRequest represents a request to create a bank account.
type CreateAccountRequest struct {
	Name          string          `json:"name"`
	AccountNumber string          `json:"account_number"`
	BankName      string          `json:"bank_name"`
	Type          string          `json:"type"`
	Balance       decimal.Decimal `json:"balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Name:          r.Name,
		AccountNumber: r.AccountNumber,
		BankName:      r.BankName,
		Type:          domain.AccountType(r.Type),
		Balance:       r.Balance,
	}
}

// UpdateAccountRequest represents a partial bank account update. Balances
// are not editable here; they only move through transactions.
type UpdateAccountRequest struct {
	Name          *string `json:"name,omitempty"`
	AccountNumber *string `json:"account_number,omitempty"`
	BankName      *string `json:"bank_name,omitempty"`
	Type          *string `json:"type,omitempty"`
}

// ToPatch converts to a domain patch.
func (r *UpdateAccountRequest) ToPatch() domain.BankAccountPatch {
	patch := domain.BankAccountPatch{
		Name:          r.Name,
		AccountNumber: r.AccountNumber,
		BankName:      r.BankName,
	}
	if r.Type != nil {
		accountType := domain.AccountType(*r.Type)
		patch.Type = &accountType
	}

	return patch
}

// CreateCardRequest represents a request to create a credit card.
type CreateCardRequest struct {
	Name          string          `json:"name"`
	CardNumber    string          `json:"card_number"`
	CreditLimit   decimal.Decimal `json:"credit_limit"`
	CreditBalance decimal.Decimal `json:"credit_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCardRequest) ToUseCaseInput() usecase.CreateCardInput {
	return usecase.CreateCardInput{
		Name:          r.Name,
		CardNumber:    r.CardNumber,
		CreditLimit:   r.CreditLimit,
		CreditBalance: r.CreditBalance,
	}
}

// UpdateCardRequest represents a partial credit card update.
type UpdateCardRequest struct {
	Name        *string          `json:"name,omitempty"`
	CardNumber  *string          `json:"card_number,omitempty"`
	CreditLimit *decimal.Decimal `json:"credit_limit,omitempty"`
}

// ToPatch converts to a domain patch.
func (r *UpdateCardRequest) ToPatch() domain.CreditCardPatch {
	return domain.CreditCardPatch{
		Name:        r.Name,
		CardNumber:  r.CardNumber,
		CreditLimit: r.CreditLimit,
	}
}

// AddCategoryRequest represents a request to register a category name.
type AddCategoryRequest struct {
	Name string `json:"name"`
}

// PaginationRequest represents pagination parameters.
type PaginationRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
