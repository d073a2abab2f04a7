package usecase

import (
	"context"
	"time"

	"github.com/aman-soni-070202/my-finances/internal/domain"
	"github.com/aman-soni-070202/my-finances/internal/infrastructure/metrics"
)

// ReconciliationUseCase verifies that every payment method balance equals
// its opening balance plus the signed sum of the transactions referencing
// it. A non-empty discrepancy list means a balance drifted from the ledger.
type ReconciliationUseCase struct {
	ledgerRepo LedgerRepository
	metrics    *metrics.Metrics
}

// NewReconciliationUseCase creates a new ReconciliationUseCase.
func NewReconciliationUseCase(ledgerRepo LedgerRepository) *ReconciliationUseCase {
	return &ReconciliationUseCase{ledgerRepo: ledgerRepo}
}

// WithMetrics enables Prometheus instrumentation.
func (uc *ReconciliationUseCase) WithMetrics(m *metrics.Metrics) *ReconciliationUseCase {
	uc.metrics = m
	return uc
}

// MethodReport is the reconciliation outcome for one payment method.
type MethodReport struct {
	MethodID        string
	Name            string
	IsCard          bool
	RecordedBalance string
	ExpectedBalance string
	Difference      string
	Consistent      bool
}

// ReconciliationReport is the outcome of a full ledger check.
type ReconciliationReport struct {
	CheckedAt     time.Time
	Methods       []MethodReport
	Discrepancies int
}

// Check runs the reconciliation query and compares recorded against
// expected balances.
func (uc *ReconciliationUseCase) Check(ctx context.Context) (*ReconciliationReport, error) {
	start := time.Now()

	rows, err := uc.ledgerRepo.BalanceChecks(ctx)
	if err != nil {
		return nil, err
	}

	report := &ReconciliationReport{
		CheckedAt: time.Now().UTC(),
		Methods:   make([]MethodReport, 0, len(rows)),
	}

	for _, row := range rows {
		expected := row.InitialBalance.Add(row.TransactionSum)
		diff := row.RecordedBalance.Sub(expected)
		consistent := diff.IsZero()

		if !consistent {
			report.Discrepancies++
		}

		report.Methods = append(report.Methods, MethodReport{
			MethodID:        row.MethodID,
			Name:            row.Name,
			IsCard:          row.IsCard,
			RecordedBalance: row.RecordedBalance.String(),
			ExpectedBalance: expected.String(),
			Difference:      diff.String(),
			Consistent:      consistent,
		})
	}

	if uc.metrics != nil {
		uc.metrics.ReconciliationRuns.Inc()
		uc.metrics.ReconciliationDrift.Set(float64(report.Discrepancies))
		uc.metrics.ReconciliationDuration.Observe(time.Since(start).Seconds())
	}

	return report, nil
}

// AuditUseCase exposes the balance-mutation audit trail.
type AuditUseCase struct {
	auditRepo AuditRepository
}

// NewAuditUseCase creates a new AuditUseCase.
func NewAuditUseCase(auditRepo AuditRepository) *AuditUseCase {
	return &AuditUseCase{auditRepo: auditRepo}
}

// ListAuditLogs lists audit entries, newest first.
func (uc *AuditUseCase) ListAuditLogs(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)

	return uc.auditRepo.List(ctx, filter)
}
