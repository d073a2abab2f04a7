package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aman-soni-070202/my-finances/internal/domain"
	"github.com/aman-soni-070202/my-finances/internal/infrastructure/metrics"
)

// AccountUseCase handles bank account business logic.
type AccountUseCase struct {
	accountRepo AccountRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		idGen:       idGen,
	}
}

// WithMetrics enables Prometheus instrumentation.
func (uc *AccountUseCase) WithMetrics(m *metrics.Metrics) *AccountUseCase {
	uc.metrics = m
	return uc
}

// CreateAccountInput represents input for creating a bank account.
type CreateAccountInput struct {
	Name          string
	AccountNumber string
	BankName      string
	Type          domain.AccountType
	Balance       decimal.Decimal
}

// CreateAccount creates a new bank account. The opening balance is recorded
// separately from the running balance so reconciliation can verify that
// balance equals opening balance plus the signed transaction sum.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.BankAccount, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	if !input.Type.Valid() {
		return nil, domain.ErrInvalidAccountType
	}

	now := time.Now().UTC()

	account := &domain.BankAccount{
		ID:             uc.idGen.Generate(),
		Name:           input.Name,
		AccountNumber:  input.AccountNumber,
		BankName:       input.BankName,
		Type:           input.Type,
		Balance:        input.Balance,
		InitialBalance: input.Balance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return account, nil
}

// GetAccount retrieves a bank account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.BankAccount, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// UpdateAccount applies a partial update to a bank account. Balances are not
// editable here; they only move through transaction writes.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, id string, patch domain.BankAccountPatch) (*domain.BankAccount, error) {
	if patch.Name != nil {
		if err := domain.ValidateName(*patch.Name); err != nil {
			return nil, err
		}
	}

	if patch.Type != nil && !patch.Type.Valid() {
		return nil, domain.ErrInvalidAccountType
	}

	return uc.accountRepo.Update(ctx, id, patch, time.Now().UTC())
}

// DeleteAccount removes a bank account. Transactions that referenced it keep
// their denormalized method name and survive the deletion.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, id string) error {
	return uc.accountRepo.Delete(ctx, id)
}

// ListAccountsInput represents input for listing bank accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists bank accounts.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.BankAccount, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.accountRepo.List(ctx, limit, offset)
}
