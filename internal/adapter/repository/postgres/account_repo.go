package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/aman-soni-070202/my-finances/internal/domain"
	"github.com/aman-soni-070202/my-finances/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const selectAccount = `
	SELECT id, name, account_number, bank_name, type, balance, initial_balance, created_at, updated_at
	FROM bank_accounts
`

// Create inserts a new bank account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.BankAccount) error {
	query := `
		INSERT INTO bank_accounts (id, name, account_number, bank_name, type, balance, initial_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		account.ID,
		account.Name,
		account.AccountNumber,
		account.BankName,
		account.Type,
		decimalToNumeric(account.Balance),
		decimalToNumeric(account.InitialBalance),
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	)

	return err
}

// GetByID retrieves a bank account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.BankAccount, error) {
	account, err := scanAccount(r.pool.QueryRow(ctx, selectAccount+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}

	return account, err
}

// Update applies a partial update and returns the updated account.
func (r *AccountRepository) Update(ctx context.Context, id string, patch domain.BankAccountPatch, updatedAt time.Time) (*domain.BankAccount, error) {
	var (
		sets []string
		args []any
	)

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.AccountNumber != nil {
		add("account_number", *patch.AccountNumber)
	}
	if patch.BankName != nil {
		add("bank_name", *patch.BankName)
	}
	if patch.Type != nil {
		add("type", *patch.Type)
	}

	add("updated_at", timeToPgTimestamptz(updatedAt))

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE bank_accounts SET %s WHERE id = $%d
		RETURNING id, name, account_number, bank_name, type, balance, initial_balance, created_at, updated_at
	`, strings.Join(sets, ", "), len(args))

	account, err := scanAccount(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}

	return account, err
}

// Delete removes a bank account.
func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bank_accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// List retrieves bank accounts with pagination.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.BankAccount, error) {
	query := selectAccount + `
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.BankAccount
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// AdjustBalance atomically increments the balance by delta inside the given
// transaction and returns the new balance.
func (r *AccountRepository) AdjustBalance(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) (decimal.Decimal, error) {
	query := `
		UPDATE bank_accounts
		SET balance = balance + $2, updated_at = $3
		WHERE id = $1
		RETURNING balance
	`

	var balance pgtype.Numeric
	err := tx.(*Tx).PgxTx().QueryRow(ctx, query, id, decimalToNumeric(delta), timeToPgTimestamptz(updatedAt)).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, domain.ErrAccountNotFound
	}
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(balance), nil
}

// ReplaceAll wipes the table and inserts the given accounts. Used by the
// backup importer.
func (r *AccountRepository) ReplaceAll(ctx context.Context, tx usecase.Transaction, accounts []*domain.BankAccount) error {
	pgxTx := tx.(*Tx).PgxTx()

	if _, err := pgxTx.Exec(ctx, `DELETE FROM bank_accounts`); err != nil {
		return err
	}

	query := `
		INSERT INTO bank_accounts (id, name, account_number, bank_name, type, balance, initial_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for _, account := range accounts {
		_, err := pgxTx.Exec(ctx, query,
			account.ID,
			account.Name,
			account.AccountNumber,
			account.BankName,
			account.Type,
			decimalToNumeric(account.Balance),
			decimalToNumeric(account.InitialBalance),
			timeToPgTimestamptz(account.CreatedAt),
			timeToPgTimestamptz(account.UpdatedAt),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func scanAccount(row pgx.Row) (*domain.BankAccount, error) {
	var (
		account        domain.BankAccount
		balance        pgtype.Numeric
		initialBalance pgtype.Numeric
		createdAt      pgtype.Timestamptz
		updatedAt      pgtype.Timestamptz
	)

	err := row.Scan(
		&account.ID,
		&account.Name,
		&account.AccountNumber,
		&account.BankName,
		&account.Type,
		&balance,
		&initialBalance,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	account.Balance = numericToDecimal(balance)
	account.InitialBalance = numericToDecimal(initialBalance)
	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time

	return &account, nil
}
