package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aman-soni-070202/my-finances/internal/domain"
)

// TransactionRepository defines data access for ledger transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, t *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Transaction, error)
	Update(ctx context.Context, tx Transaction, id string, patch domain.TransactionPatch) error
	Delete(ctx context.Context, tx Transaction, id string) error
	DeleteAll(ctx context.Context, tx Transaction) error
	List(ctx context.Context, limit, offset int) ([]*domain.Transaction, error)
	ListAll(ctx context.Context) ([]*domain.Transaction, error)
	// ListByDateRange returns transactions whose occurrence date falls in
	// [start, end], inclusive on both ends by calendar date, newest first.
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Transaction, error)
	TotalsByMonth(ctx context.Context, year int) ([]MonthKindTotal, error)
}

// MonthKindTotal is one row of the yearly aggregation query.
type MonthKindTotal struct {
	Month int // 1-12
	Kind  domain.TransactionKind
	Total decimal.Decimal
}

// AccountRepository defines data access for bank accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.BankAccount) error
	GetByID(ctx context.Context, id string) (*domain.BankAccount, error)
	Update(ctx context.Context, id string, patch domain.BankAccountPatch, updatedAt time.Time) (*domain.BankAccount, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*domain.BankAccount, error)
	// AdjustBalance atomically increments the balance by delta and returns
	// the new balance. Fails with domain.ErrAccountNotFound if id is missing.
	AdjustBalance(ctx context.Context, tx Transaction, id string, delta decimal.Decimal, updatedAt time.Time) (decimal.Decimal, error)
	ReplaceAll(ctx context.Context, tx Transaction, accounts []*domain.BankAccount) error
}

// CardRepository defines data access for credit cards.
type CardRepository interface {
	Create(ctx context.Context, card *domain.CreditCard) error
	GetByID(ctx context.Context, id string) (*domain.CreditCard, error)
	Update(ctx context.Context, id string, patch domain.CreditCardPatch, updatedAt time.Time) (*domain.CreditCard, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*domain.CreditCard, error)
	// AdjustBalance atomically increments the credit balance by delta and
	// returns the new balance. Fails with domain.ErrCardNotFound if id is
	// missing.
	AdjustBalance(ctx context.Context, tx Transaction, id string, delta decimal.Decimal, updatedAt time.Time) (decimal.Decimal, error)
	ReplaceAll(ctx context.Context, tx Transaction, cards []*domain.CreditCard) error
}

// CategoryRepository defines data access for the category registry.
type CategoryRepository interface {
	ListByKind(ctx context.Context, kind domain.TransactionKind) ([]string, error)
	Exists(ctx context.Context, kind domain.TransactionKind, name string) (bool, error)
	Add(ctx context.Context, kind domain.TransactionKind, name string) error
	Remove(ctx context.Context, kind domain.TransactionKind, name string) error
	ReplaceAll(ctx context.Context, tx Transaction, categories map[domain.TransactionKind][]string) error
}

// LedgerRepository defines ledger-wide aggregate queries.
type LedgerRepository interface {
	// BalanceChecks returns one row per payment method with its recorded
	// balance, its opening balance and the signed sum of all transactions
	// currently referencing it.
	BalanceChecks(ctx context.Context) ([]BalanceCheck, error)
}

// BalanceCheck is one row of the reconciliation aggregation.
type BalanceCheck struct {
	MethodID        string
	Name            string
	IsCard          bool
	RecordedBalance decimal.Decimal
	InitialBalance  decimal.Decimal
	TransactionSum  decimal.Decimal
}

// AuditRepository defines data access for the balance-mutation audit trail.
type AuditRepository interface {
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations for read-side projections.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Delete releases a claimed key.
	Delete(ctx context.Context, key string) error
}
