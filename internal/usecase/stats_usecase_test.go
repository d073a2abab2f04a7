package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aman-soni-070202/my-finances/internal/domain"
	"github.com/aman-soni-070202/my-finances/internal/usecase"
	"github.com/aman-soni-070202/my-finances/internal/usecase/mocks"
)

func seedTransaction(t *testing.T, repo *mocks.MockTransactionRepository, id string, at time.Time, amount int64, kind domain.TransactionKind) {
	t.Helper()
	err := repo.Create(context.Background(), nil, &domain.Transaction{
		ID:            id,
		OccurredAt:    at,
		Amount:        decimal.NewFromInt(amount),
		Kind:          kind,
		Category:      "Other",
		PaymentMethod: domain.PaymentMethodRef{ID: "acc-1"},
	})
	if err != nil {
		t.Fatalf("seed %s: %v", id, err)
	}
}

func TestStatsUseCase_MonthlyStats(t *testing.T) {
	repo := mocks.NewMockTransactionRepository()

	march := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	seedTransaction(t, repo, "t-1", march, 1000, domain.KindIncome)
	seedTransaction(t, repo, "t-2", march.AddDate(0, 0, 5), 300, domain.KindExpense)
	seedTransaction(t, repo, "t-3", march.AddDate(0, 0, 10), 200, domain.KindExpense)
	// Outside the month, must not count.
	seedTransaction(t, repo, "t-4", march.AddDate(0, 1, 0), 999, domain.KindExpense)

	uc := usecase.NewStatsUseCase(repo, nil, 0, zerolog.Nop())

	summary, err := uc.MonthlyStats(context.Background(), 2026, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !summary.Income.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected income 1000, got %s", summary.Income)
	}
	if !summary.Expense.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected expense 500, got %s", summary.Expense)
	}
	if !summary.Balance.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected balance 500, got %s", summary.Balance)
	}
	if len(summary.Transactions) != 3 {
		t.Errorf("expected 3 transactions, got %d", len(summary.Transactions))
	}
}

func TestStatsUseCase_MonthlyStatsEmptyMonth(t *testing.T) {
	uc := usecase.NewStatsUseCase(mocks.NewMockTransactionRepository(), nil, 0, zerolog.Nop())

	summary, err := uc.MonthlyStats(context.Background(), 2026, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !summary.Income.IsZero() || !summary.Expense.IsZero() || !summary.Balance.IsZero() {
		t.Errorf("expected all-zero summary, got %+v", summary)
	}
	if len(summary.Transactions) != 0 {
		t.Errorf("expected no transactions, got %d", len(summary.Transactions))
	}
}

func TestStatsUseCase_MonthlyStatsValidation(t *testing.T) {
	uc := usecase.NewStatsUseCase(mocks.NewMockTransactionRepository(), nil, 0, zerolog.Nop())

	tests := []struct {
		name  string
		year  int
		month int
	}{
		{"month too large", 2026, 13},
		{"month negative", 2026, -1},
		{"month zero", 2026, 0},
		{"year too small", 1800, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.MonthlyStats(context.Background(), tt.year, tt.month)
			if !errors.Is(err, domain.ErrInvalidStatsTime) {
				t.Errorf("expected ErrInvalidStatsTime, got %v", err)
			}
		})
	}
}

func TestStatsUseCase_MonthlyStatsStorageFailure(t *testing.T) {
	repo := mocks.NewMockTransactionRepository()
	repo.ListByDateRangeFunc = func(ctx context.Context, start, end time.Time) ([]*domain.Transaction, error) {
		return nil, errors.New("connection refused")
	}

	uc := usecase.NewStatsUseCase(repo, nil, 0, zerolog.Nop())

	// Statistics degrade to zero values rather than failing the request.
	summary, err := uc.MonthlyStats(context.Background(), 2026, 3)
	if err != nil {
		t.Fatalf("expected degraded result, got error: %v", err)
	}
	if !summary.Income.IsZero() || !summary.Expense.IsZero() {
		t.Errorf("expected zero values, got income=%s expense=%s", summary.Income, summary.Expense)
	}
}

func TestStatsUseCase_MonthlyStatsUsesCache(t *testing.T) {
	repo := mocks.NewMockTransactionRepository()
	calls := 0
	repo.ListByDateRangeFunc = func(ctx context.Context, start, end time.Time) ([]*domain.Transaction, error) {
		calls++
		return []*domain.Transaction{}, nil
	}

	cache := mocks.NewMockCache()
	uc := usecase.NewStatsUseCase(repo, cache, time.Minute, zerolog.Nop())

	if _, err := uc.MonthlyStats(context.Background(), 2026, 3); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := uc.MonthlyStats(context.Background(), 2026, 3); err != nil {
		t.Fatalf("second call: %v", err)
	}

	if calls != 1 {
		t.Errorf("expected 1 repository call, got %d", calls)
	}
	if !cache.Contains("stats:monthly:2026-03") {
		t.Error("expected summary cached under stats:monthly:2026-03")
	}
}

func TestStatsUseCase_YearlyStats(t *testing.T) {
	repo := mocks.NewMockTransactionRepository()

	seedTransaction(t, repo, "t-1", time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC), 1000, domain.KindIncome)
	seedTransaction(t, repo, "t-2", time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC), 400, domain.KindExpense)
	seedTransaction(t, repo, "t-3", time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC), 250, domain.KindExpense)
	// Different year, must not count.
	seedTransaction(t, repo, "t-4", time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), 999, domain.KindIncome)

	uc := usecase.NewStatsUseCase(repo, nil, 0, zerolog.Nop())

	months, err := uc.YearlyStats(context.Background(), 2026)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(months) != 12 {
		t.Fatalf("expected 12 month buckets, got %d", len(months))
	}

	jan := months[0]
	if jan.Month != 0 {
		t.Errorf("expected month index 0 for January, got %d", jan.Month)
	}
	if !jan.Income.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected January income 1000, got %s", jan.Income)
	}
	if !jan.Expense.Equal(decimal.NewFromInt(400)) {
		t.Errorf("expected January expense 400, got %s", jan.Expense)
	}
	if !jan.Balance.Equal(decimal.NewFromInt(600)) {
		t.Errorf("expected January balance 600, got %s", jan.Balance)
	}

	dec := months[11]
	if !dec.Expense.Equal(decimal.NewFromInt(250)) {
		t.Errorf("expected December expense 250, got %s", dec.Expense)
	}

	// Untouched months stay zero-filled.
	if !months[5].Income.IsZero() || !months[5].Expense.IsZero() {
		t.Errorf("expected June zero-filled, got %+v", months[5])
	}
}

func TestStatsUseCase_YearlyStatsStorageFailure(t *testing.T) {
	repo := mocks.NewMockTransactionRepository()
	repo.TotalsByMonthFunc = func(ctx context.Context, year int) ([]usecase.MonthKindTotal, error) {
		return nil, errors.New("connection refused")
	}

	uc := usecase.NewStatsUseCase(repo, nil, 0, zerolog.Nop())

	months, err := uc.YearlyStats(context.Background(), 2026)
	if err != nil {
		t.Fatalf("expected degraded result, got error: %v", err)
	}
	if len(months) != 12 {
		t.Fatalf("expected 12 zero buckets, got %d", len(months))
	}
	for _, m := range months {
		if !m.Income.IsZero() || !m.Expense.IsZero() || !m.Balance.IsZero() {
			t.Errorf("expected month %d zero-filled, got %+v", m.Month, m)
		}
	}
}
