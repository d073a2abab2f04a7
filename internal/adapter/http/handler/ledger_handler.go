package handler

import (
	"context"
	"net/http"

	"github.com/aman-soni-070202/my-finances/internal/adapter/http/dto"
	"github.com/aman-soni-070202/my-finances/internal/domain"
	"github.com/aman-soni-070202/my-finances/internal/usecase"
)

// ReconciliationService defines the behavior needed by LedgerHandler.
type ReconciliationService interface {
	Check(ctx context.Context) (*usecase.ReconciliationReport, error)
}

// AuditService defines the audit trail behavior needed by LedgerHandler.
type AuditService interface {
	ListAuditLogs(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// LedgerHandler exposes ledger-wide consistency checks and the balance
// mutation audit trail.
type LedgerHandler struct {
	reconciliationUC ReconciliationService
	auditUC          AuditService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(reconciliationUC ReconciliationService, auditUC AuditService) *LedgerHandler {
	return &LedgerHandler{
		reconciliationUC: reconciliationUC,
		auditUC:          auditUC,
	}
}

// Reconcile verifies every payment method balance against its opening
// balance plus the signed transaction sum.
func (h *LedgerHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconciliationUC.Check(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to reconcile ledger", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationFromUseCase(report))
}

// AuditLogs lists audit entries, newest first.
func (h *LedgerHandler) AuditLogs(w http.ResponseWriter, r *http.Request) {
	filter := domain.AuditFilter{
		Action:    r.URL.Query().Get("action"),
		MethodID:  r.URL.Query().Get("method_id"),
		StartDate: parseTimeQuery(r, "start_date"),
		EndDate:   parseTimeQuery(r, "end_date"),
		Limit:     parseIntQuery(r, "limit", 0),
		Offset:    parseIntQuery(r, "offset", 0),
	}

	logs, err := h.auditUC.ListAuditLogs(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list audit logs", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditLogsFromDomain(logs))
}
