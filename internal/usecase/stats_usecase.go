package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aman-soni-070202/my-finances/internal/domain"
	"github.com/aman-soni-070202/my-finances/internal/infrastructure/metrics"
)

// StatsUseCase computes monthly and yearly spending aggregates. Statistics
// are a read-side convenience: when the underlying store fails, the use case
// logs the error and serves zero-valued results instead of propagating it.
type StatsUseCase struct {
	transactionRepo TransactionRepository
	cache           Cache
	cacheTTL        time.Duration
	logger          zerolog.Logger
	metrics         *metrics.Metrics
}

// NewStatsUseCase creates a new StatsUseCase.
func NewStatsUseCase(transactionRepo TransactionRepository, cache Cache, cacheTTL time.Duration, logger zerolog.Logger) *StatsUseCase {
	if cacheTTL <= 0 {
		cacheTTL = StatsCacheTTL
	}

	return &StatsUseCase{
		transactionRepo: transactionRepo,
		cache:           cache,
		cacheTTL:        cacheTTL,
		logger:          logger,
	}
}

// WithMetrics enables Prometheus instrumentation.
func (uc *StatsUseCase) WithMetrics(m *metrics.Metrics) *StatsUseCase {
	uc.metrics = m
	return uc
}

// MonthlyStats returns totals and the transaction list for one calendar
// month. Month is 1-12.
func (uc *StatsUseCase) MonthlyStats(ctx context.Context, year, month int) (*domain.MonthlySummary, error) {
	if err := domain.ValidateStatsPeriod(month, year); err != nil {
		return nil, err
	}

	if month == 0 {
		return nil, fmt.Errorf("%w: month is required", domain.ErrInvalidStatsTime)
	}

	key := fmt.Sprintf("stats:monthly:%04d-%02d", year, month)

	if cached, ok := uc.fromCache(ctx, key, "monthly"); ok {
		var summary domain.MonthlySummary
		if err := json.Unmarshal(cached, &summary); err == nil {
			return &summary, nil
		}
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	transactions, err := uc.transactionRepo.ListByDateRange(ctx, start, end)
	if err != nil {
		uc.logger.Error().Err(err).Int("year", year).Int("month", month).
			Msg("monthly stats query failed, serving zero values")

		if uc.metrics != nil {
			uc.metrics.StatsDegraded.Inc()
		}

		summary := domain.ZeroMonthlySummary()

		return &summary, nil
	}

	summary := domain.MonthlySummary{
		Income:       decimal.Zero,
		Expense:      decimal.Zero,
		Balance:      decimal.Zero,
		Transactions: transactions,
	}

	for _, t := range transactions {
		switch t.Kind {
		case domain.KindIncome:
			summary.Income = summary.Income.Add(t.Amount)
		case domain.KindExpense:
			summary.Expense = summary.Expense.Add(t.Amount)
		}
	}

	summary.Balance = summary.Income.Sub(summary.Expense)

	uc.toCache(ctx, key, summary)

	return &summary, nil
}

// YearlyStats returns twelve month buckets for one year. Months with no
// transactions come back zero-filled, so callers can index the slice by
// zero-based month directly.
func (uc *StatsUseCase) YearlyStats(ctx context.Context, year int) ([]domain.MonthData, error) {
	if err := domain.ValidateStatsPeriod(0, year); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("stats:yearly:%04d", year)

	if cached, ok := uc.fromCache(ctx, key, "yearly"); ok {
		var months []domain.MonthData
		if err := json.Unmarshal(cached, &months); err == nil && len(months) == 12 {
			return months, nil
		}
	}

	totals, err := uc.transactionRepo.TotalsByMonth(ctx, year)
	if err != nil {
		uc.logger.Error().Err(err).Int("year", year).
			Msg("yearly stats query failed, serving zero values")

		if uc.metrics != nil {
			uc.metrics.StatsDegraded.Inc()
		}

		return domain.ZeroYear(), nil
	}

	months := domain.ZeroYear()

	for _, row := range totals {
		if row.Month < 1 || row.Month > 12 {
			continue
		}

		bucket := &months[row.Month-1]

		switch row.Kind {
		case domain.KindIncome:
			bucket.Income = bucket.Income.Add(row.Total)
		case domain.KindExpense:
			bucket.Expense = bucket.Expense.Add(row.Total)
		}

		bucket.Balance = bucket.Income.Sub(bucket.Expense)
	}

	uc.toCache(ctx, key, months)

	return months, nil
}

func (uc *StatsUseCase) fromCache(ctx context.Context, key, period string) ([]byte, bool) {
	if uc.cache == nil {
		return nil, false
	}

	data, err := uc.cache.Get(ctx, key)
	if err != nil || data == nil {
		if uc.metrics != nil {
			uc.metrics.StatsCacheMisses.WithLabelValues(period).Inc()
		}
		return nil, false
	}

	if uc.metrics != nil {
		uc.metrics.StatsCacheHits.WithLabelValues(period).Inc()
	}

	return data, true
}

func (uc *StatsUseCase) toCache(ctx context.Context, key string, v any) {
	if uc.cache == nil {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		return
	}

	if err := uc.cache.Set(ctx, key, data, uc.cacheTTL); err != nil {
		uc.logger.Debug().Err(err).Str("key", key).Msg("stats cache write failed")
	}
}
