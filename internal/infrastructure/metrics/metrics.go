package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transaction metrics
	TransactionsCreated prometheus.Counter
	TransactionsUpdated prometheus.Counter
	TransactionsDeleted prometheus.Counter
	TransactionAmount   *prometheus.HistogramVec
	TransactionErrors   *prometheus.CounterVec

	// Payment method metrics
	AccountsCreated    prometheus.Counter
	CardsCreated       prometheus.Counter
	BalanceAdjustments *prometheus.CounterVec

	// Stats metrics
	StatsCacheHits   *prometheus.CounterVec
	StatsCacheMisses *prometheus.CounterVec
	StatsDegraded    prometheus.Counter

	// Reconciliation metrics
	ReconciliationRuns     prometheus.Counter
	ReconciliationDrift    prometheus.Gauge
	ReconciliationDuration prometheus.Histogram

	// Backup metrics
	BackupExports         prometheus.Counter
	BackupImports         prometheus.Counter
	BackupImportedEntries prometheus.Histogram

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Transaction metrics
		TransactionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "myfinances_transactions_created_total",
			Help: "Total number of transactions recorded",
		}),
		TransactionsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "myfinances_transactions_updated_total",
			Help: "Total number of transactions updated",
		}),
		TransactionsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "myfinances_transactions_deleted_total",
			Help: "Total number of transactions deleted",
		}),
		TransactionAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "myfinances_transaction_amount",
				Help:    "Transaction amounts by kind",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"kind"},
		),
		TransactionErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "myfinances_transaction_errors_total",
				Help: "Total number of transaction errors by type",
			},
			[]string{"operation"},
		),

		// Payment method metrics
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "myfinances_accounts_created_total",
			Help: "Total number of bank accounts created",
		}),
		CardsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "myfinances_cards_created_total",
			Help: "Total number of credit cards created",
		}),
		BalanceAdjustments: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "myfinances_balance_adjustments_total",
				Help: "Total balance adjustments applied by method type",
			},
			[]string{"method_type"},
		),

		// Stats metrics
		StatsCacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "myfinances_stats_cache_hits_total",
				Help: "Total stats cache hits by period",
			},
			[]string{"period"},
		),
		StatsCacheMisses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "myfinances_stats_cache_misses_total",
				Help: "Total stats cache misses by period",
			},
			[]string{"period"},
		),
		StatsDegraded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "myfinances_stats_degraded_total",
			Help: "Total stats requests answered with zero values after a storage failure",
		}),

		// Reconciliation metrics
		ReconciliationRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "myfinances_reconciliation_runs_total",
			Help: "Total reconciliation checks executed",
		}),
		ReconciliationDrift: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "myfinances_reconciliation_discrepancies",
			Help: "Payment methods with balance drift found by the last check",
		}),
		ReconciliationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "myfinances_reconciliation_duration_seconds",
			Help:    "Duration of reconciliation checks",
			Buckets: prometheus.DefBuckets,
		}),

		// Backup metrics
		BackupExports: promauto.NewCounter(prometheus.CounterOpts{
			Name: "myfinances_backup_exports_total",
			Help: "Total backup exports",
		}),
		BackupImports: promauto.NewCounter(prometheus.CounterOpts{
			Name: "myfinances_backup_imports_total",
			Help: "Total backup imports",
		}),
		BackupImportedEntries: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "myfinances_backup_imported_entries",
			Help:    "Transactions restored per import",
			Buckets: []float64{10, 100, 1000, 10000, 100000},
		}),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "myfinances_rate_limit_hits_total",
				Help: "Total rate limit rejections",
			},
			[]string{"path"},
		),

		// Audit metrics
		AuditLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "myfinances_audit_logs_created_total",
				Help: "Total audit log entries by action",
			},
			[]string{"action"},
		),
	}
}
