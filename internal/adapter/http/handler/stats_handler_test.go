package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/aman-soni-070202/my-finances/internal/adapter/http/dto"
	"github.com/aman-soni-070202/my-finances/internal/domain"
)

type statsServiceStub struct {
	monthlyFn func(ctx context.Context, year, month int) (*domain.MonthlySummary, error)
	yearlyFn  func(ctx context.Context, year int) ([]domain.MonthData, error)
}

func (s *statsServiceStub) MonthlyStats(ctx context.Context, year, month int) (*domain.MonthlySummary, error) {
	return s.monthlyFn(ctx, year, month)
}

func (s *statsServiceStub) YearlyStats(ctx context.Context, year int) ([]domain.MonthData, error) {
	return s.yearlyFn(ctx, year)
}

func TestStatsHandler_Monthly(t *testing.T) {
	var gotYear, gotMonth int
	h := NewStatsHandler(&statsServiceStub{
		monthlyFn: func(ctx context.Context, year, month int) (*domain.MonthlySummary, error) {
			gotYear, gotMonth = year, month
			return &domain.MonthlySummary{
				Income:       decimal.NewFromInt(500),
				Expense:      decimal.NewFromInt(120),
				Balance:      decimal.NewFromInt(380),
				Transactions: []*domain.Transaction{{ID: "tx-1"}},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/stats/monthly?year=2026&month=3", nil)
	rec := httptest.NewRecorder()

	h.Monthly(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if gotYear != 2026 || gotMonth != 3 {
		t.Fatalf("expected 2026-03, got %d-%d", gotYear, gotMonth)
	}

	var resp dto.MonthlyStatsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if !resp.Balance.Equal(decimal.NewFromInt(380)) {
		t.Fatalf("expected balance 380, got %s", resp.Balance)
	}

	if len(resp.Transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(resp.Transactions))
	}
}

func TestStatsHandler_Monthly_InvalidMonth(t *testing.T) {
	h := NewStatsHandler(&statsServiceStub{
		monthlyFn: func(ctx context.Context, year, month int) (*domain.MonthlySummary, error) {
			return nil, domain.ErrInvalidStatsTime
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/stats/monthly?year=2026&month=13", nil)
	rec := httptest.NewRecorder()

	h.Monthly(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestStatsHandler_Yearly_MonthsAreOneBased(t *testing.T) {
	months := domain.ZeroYear()
	months[2].Income = decimal.NewFromInt(900)
	months[2].Balance = decimal.NewFromInt(900)

	h := NewStatsHandler(&statsServiceStub{
		yearlyFn: func(ctx context.Context, year int) ([]domain.MonthData, error) {
			return months, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/stats/yearly?year=2026", nil)
	rec := httptest.NewRecorder()

	h.Yearly(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.YearlyStatsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(resp.Months) != 12 {
		t.Fatalf("expected 12 months, got %d", len(resp.Months))
	}

	if resp.Months[0].Month != 1 || resp.Months[11].Month != 12 {
		t.Fatalf("months not 1-based: first=%d last=%d", resp.Months[0].Month, resp.Months[11].Month)
	}

	if !resp.Months[2].Income.Equal(decimal.NewFromInt(900)) {
		t.Fatalf("march income lost: %s", resp.Months[2].Income)
	}
}
