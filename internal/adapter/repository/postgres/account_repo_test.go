package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"

	"github.com/aman-soni-070202/my-finances/internal/domain"
	"github.com/aman-soni-070202/my-finances/internal/usecase"
)

func beginMockTx(t *testing.T, pool pgxmock.PgxPoolIface) usecase.Transaction {
	t.Helper()
	pool.ExpectBegin()
	tx, err := newTxManagerWithPool(pool).Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	return tx
}

func TestAccountRepositoryAdjustBalance(t *testing.T) {
	mockPool := newMockPool(t)
	tx := beginMockTx(t, mockPool)

	now := time.Now().UTC()
	mockPool.ExpectQuery(`UPDATE bank_accounts`).
		WithArgs("acc-1", decimalToNumeric(decimal.NewFromInt(-300)), timeToPgTimestamptz(now)).
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(decimalToNumeric(decimal.NewFromInt(700))))

	repo := NewAccountRepository(nil)
	balance, err := repo.AdjustBalance(context.Background(), tx, "acc-1", decimal.NewFromInt(-300), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(700)) {
		t.Errorf("expected new balance 700, got %s", balance)
	}

	assertExpectations(t, mockPool)
}

func TestAccountRepositoryAdjustBalanceMissing(t *testing.T) {
	mockPool := newMockPool(t)
	tx := beginMockTx(t, mockPool)

	now := time.Now().UTC()
	mockPool.ExpectQuery(`UPDATE bank_accounts`).
		WithArgs("acc-missing", decimalToNumeric(decimal.NewFromInt(50)), timeToPgTimestamptz(now)).
		WillReturnError(pgx.ErrNoRows)

	repo := NewAccountRepository(nil)
	_, err := repo.AdjustBalance(context.Background(), tx, "acc-missing", decimal.NewFromInt(50), now)
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestTransactionRepositoryUpdatePatchedColumnsOnly(t *testing.T) {
	mockPool := newMockPool(t)
	tx := beginMockTx(t, mockPool)

	amount := decimal.NewFromInt(100)
	note := "groceries"

	mockPool.ExpectExec(`UPDATE transactions SET amount = \$1, note = \$2 WHERE id = \$3`).
		WithArgs(decimalToNumeric(amount), note, "t-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewTransactionRepository(nil)
	err := repo.Update(context.Background(), tx, "t-1", domain.TransactionPatch{
		Amount: &amount,
		Note:   &note,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestTransactionRepositoryUpdateMissingRow(t *testing.T) {
	mockPool := newMockPool(t)
	tx := beginMockTx(t, mockPool)

	note := "groceries"
	mockPool.ExpectExec(`UPDATE transactions`).
		WithArgs(note, "t-missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewTransactionRepository(nil)
	err := repo.Update(context.Background(), tx, "t-missing", domain.TransactionPatch{Note: &note})
	if !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestTransactionRepositoryUpdateEmptyPatch(t *testing.T) {
	mockPool := newMockPool(t)
	tx := beginMockTx(t, mockPool)

	repo := NewTransactionRepository(nil)
	if err := repo.Update(context.Background(), tx, "t-1", domain.TransactionPatch{}); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}

	assertExpectations(t, mockPool)
}
