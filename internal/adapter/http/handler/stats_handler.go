package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/aman-soni-070202/my-finances/internal/adapter/http/dto"
	"github.com/aman-soni-070202/my-finances/internal/domain"
)

// StatsService defines the behavior needed by StatsHandler.
type StatsService interface {
	MonthlyStats(ctx context.Context, year, month int) (*domain.MonthlySummary, error)
	YearlyStats(ctx context.Context, year int) ([]domain.MonthData, error)
}

// StatsHandler handles statistics HTTP requests.
type StatsHandler struct {
	statsUC StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsUC StatsService) *StatsHandler {
	return &StatsHandler{statsUC: statsUC}
}

// Monthly returns one calendar month of the ledger. Defaults to the
// current month when year and month are omitted.
func (h *StatsHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	year := parseIntQuery(r, "year", now.Year())
	month := parseIntQuery(r, "month", int(now.Month()))

	summary, err := h.statsUC.MonthlyStats(r.Context(), year, month)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute monthly stats", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MonthlyStatsFromDomain(year, month, summary))
}

// Yearly returns twelve month buckets for one year. Defaults to the
// current year.
func (h *StatsHandler) Yearly(w http.ResponseWriter, r *http.Request) {
	year := parseIntQuery(r, "year", time.Now().UTC().Year())

	months, err := h.statsUC.YearlyStats(r.Context(), year)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute yearly stats", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.YearlyStatsFromDomain(year, months))
}
