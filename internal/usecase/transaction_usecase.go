package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aman-soni-070202/my-finances/internal/domain"
	"github.com/aman-soni-070202/my-finances/internal/infrastructure/metrics"
)

// TransactionUseCase handles transaction business logic. Every write goes
// through a single database transaction that records the row change and the
// matching balance adjustments together, so a failure anywhere leaves both
// the transaction list and the method balances untouched.
type TransactionUseCase struct {
	txManager       TransactionManager
	transactionRepo TransactionRepository
	accountRepo     AccountRepository
	cardRepo        CardRepository
	categoryRepo    CategoryRepository
	auditRepo       AuditRepository
	idGen           IDGenerator
	cache           Cache
	retrier         Retrier
	metrics         *metrics.Metrics
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TransactionManager,
	transactionRepo TransactionRepository,
	accountRepo AccountRepository,
	cardRepo CardRepository,
	categoryRepo CategoryRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	cache Cache,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:       txManager,
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		cardRepo:        cardRepo,
		categoryRepo:    categoryRepo,
		auditRepo:       auditRepo,
		idGen:           idGen,
		cache:           cache,
	}
}

// WithRetrier configures automatic retries on transient database errors.
func (uc *TransactionUseCase) WithRetrier(r Retrier) *TransactionUseCase {
	uc.retrier = r
	return uc
}

// WithMetrics enables Prometheus instrumentation.
func (uc *TransactionUseCase) WithMetrics(m *metrics.Metrics) *TransactionUseCase {
	uc.metrics = m
	return uc
}

// CreateTransactionInput represents input for creating a transaction.
type CreateTransactionInput struct {
	OccurredAt    time.Time
	Amount        decimal.Decimal
	Kind          domain.TransactionKind
	Category      string
	Note          string
	PaymentMethod domain.PaymentMethodRef
	// SkipBalanceUpdate records the transaction without touching the
	// payment method balance. Used by the backup importer, which restores
	// balances separately.
	SkipBalanceUpdate bool
}

// CreateTransaction records a transaction and applies its effect to the
// referenced payment method balance.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if err := domain.ValidateNote(input.Note); err != nil {
		return nil, err
	}

	known, err := uc.categoryRepo.Exists(ctx, input.Kind, input.Category)
	if err != nil {
		return nil, err
	}

	if !known {
		return nil, domain.ErrUnknownCategory
	}

	now := time.Now().UTC()

	occurredAt := input.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = now
	}

	transaction := &domain.Transaction{
		ID:            uc.idGen.Generate(),
		OccurredAt:    occurredAt,
		Amount:        input.Amount,
		Kind:          input.Kind,
		Category:      input.Category,
		Note:          input.Note,
		PaymentMethod: input.PaymentMethod,
		CreatedAt:     now,
	}

	if err := transaction.Validate(); err != nil {
		return nil, err
	}

	err = uc.withRetry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.transactionRepo.Create(ctx, tx, transaction); err != nil {
			return err
		}

		if !input.SkipBalanceUpdate {
			adjustments := domain.AdjustmentsForChange(nil, transaction)
			if err := uc.applyAdjustments(ctx, tx, domain.AuditActionTransactionCreate, transaction.ID, adjustments, nil, transaction, now); err != nil {
				return err
			}
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		uc.countError("create")
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsCreated.Inc()
		amount, _ := transaction.Amount.Float64()
		uc.metrics.TransactionAmount.WithLabelValues(string(transaction.Kind)).Observe(amount)
	}

	uc.invalidateStats(ctx, transaction.OccurredAt)

	return transaction, nil
}

// UpdateTransaction applies a partial update to a transaction and reconciles
// payment method balances with the change. When the payment method itself
// changes, the old effect is reversed against the old method and the new
// effect applied to the new one. When only the amount or the kind changes,
// a single net adjustment is applied.
func (uc *TransactionUseCase) UpdateTransaction(ctx context.Context, id string, patch domain.TransactionPatch) (*domain.Transaction, error) {
	if patch.IsZero() {
		return uc.transactionRepo.GetByID(ctx, id)
	}

	if patch.Amount != nil {
		if err := domain.ValidateAmount(*patch.Amount); err != nil {
			return nil, err
		}
	}

	if patch.Note != nil {
		if err := domain.ValidateNote(*patch.Note); err != nil {
			return nil, err
		}
	}

	var updated *domain.Transaction

	now := time.Now().UTC()

	err := uc.withRetry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		before, err := uc.transactionRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		after := patch.ApplyTo(*before)
		if err := after.Validate(); err != nil {
			return err
		}

		if patch.Kind != nil || patch.Category != nil {
			// A kind flip without an explicit category keeps the old
			// category name, which may not exist on the other side.
			known, err := uc.categoryRepo.Exists(ctx, after.Kind, after.Category)
			if err != nil {
				return err
			}

			if !known {
				return domain.ErrUnknownCategory
			}
		}

		if err := uc.transactionRepo.Update(ctx, tx, id, patch); err != nil {
			return err
		}

		adjustments := domain.AdjustmentsForChange(before, &after)
		if err := uc.applyAdjustments(ctx, tx, domain.AuditActionTransactionUpdate, id, adjustments, before, &after, now); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		updated = &after

		uc.invalidateStats(ctx, before.OccurredAt, after.OccurredAt)

		return nil
	})
	if err != nil {
		uc.countError("update")
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsUpdated.Inc()
	}

	return updated, nil
}

// DeleteTransaction removes a transaction and reverses its effect on the
// payment method balance. Deleting an unknown transaction fails with
// domain.ErrTransactionNotFound.
func (uc *TransactionUseCase) DeleteTransaction(ctx context.Context, id string) error {
	now := time.Now().UTC()

	err := uc.withRetry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		before, err := uc.transactionRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := uc.transactionRepo.Delete(ctx, tx, id); err != nil {
			return err
		}

		adjustments := domain.AdjustmentsForChange(before, nil)
		if err := uc.applyAdjustments(ctx, tx, domain.AuditActionTransactionDelete, id, adjustments, before, nil, now); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		uc.invalidateStats(ctx, before.OccurredAt)

		return nil
	})
	if err != nil {
		uc.countError("delete")
		return err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsDeleted.Inc()
	}

	return nil
}

// GetTransaction retrieves a transaction by ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.transactionRepo.GetByID(ctx, id)
}

// ListTransactionsInput represents input for listing transactions.
type ListTransactionsInput struct {
	Limit  int
	Offset int
}

// ListTransactions lists transactions, newest first.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.transactionRepo.List(ctx, limit, offset)
}

// applyAdjustments routes each balance adjustment to the owning store and
// writes one audit row per adjustment. A missing payment method aborts the
// enclosing database transaction.
func (uc *TransactionUseCase) applyAdjustments(
	ctx context.Context,
	tx Transaction,
	action string,
	transactionID string,
	adjustments []domain.BalanceAdjustment,
	before, after *domain.Transaction,
	now time.Time,
) error {
	beforeState := domain.MarshalState(before)
	afterState := domain.MarshalState(after)

	for _, adj := range adjustments {
		var err error
		if adj.Method.IsCard {
			_, err = uc.cardRepo.AdjustBalance(ctx, tx, adj.Method.ID, adj.Delta, now)
		} else {
			_, err = uc.accountRepo.AdjustBalance(ctx, tx, adj.Method.ID, adj.Delta, now)
		}

		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) || errors.Is(err, domain.ErrCardNotFound) {
				return fmt.Errorf("%w: transaction %s references %s", domain.ErrPaymentMethodNotFound, transactionID, adj.Method.ID)
			}

			return err
		}

		audit := &domain.AuditLog{
			ID:          uc.idGen.Generate(),
			Action:      action,
			MethodID:    adj.Method.ID,
			IsCard:      adj.Method.IsCard,
			Delta:       adj.Delta.String(),
			BeforeState: beforeState,
			AfterState:  afterState,
			Status:      domain.AuditStatusSuccess,
			CreatedAt:   now,
		}

		if err := uc.auditRepo.CreateTx(ctx, tx, audit); err != nil {
			return err
		}

		if uc.metrics != nil {
			uc.metrics.BalanceAdjustments.WithLabelValues(methodType(adj.Method.IsCard)).Inc()
			uc.metrics.AuditLogsCreated.WithLabelValues(action).Inc()
		}
	}

	return nil
}

func methodType(isCard bool) string {
	if isCard {
		return "card"
	}
	return "account"
}

func (uc *TransactionUseCase) countError(operation string) {
	if uc.metrics != nil {
		uc.metrics.TransactionErrors.WithLabelValues(operation).Inc()
	}
}

func (uc *TransactionUseCase) withRetry(ctx context.Context, op func() error) error {
	if uc.retrier == nil {
		return op()
	}

	return uc.retrier.Retry(ctx, op)
}

// invalidateStats drops cached aggregates for the months touched by a write.
// Cache failures are ignored; entries expire on their own.
func (uc *TransactionUseCase) invalidateStats(ctx context.Context, occurredAt ...time.Time) {
	if uc.cache == nil {
		return
	}

	seen := make(map[string]bool)

	var keys []string
	for _, at := range occurredAt {
		monthly := fmt.Sprintf("stats:monthly:%04d-%02d", at.Year(), int(at.Month()))
		yearly := fmt.Sprintf("stats:yearly:%04d", at.Year())

		for _, k := range []string{monthly, yearly} {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}

	if len(keys) > 0 {
		_ = uc.cache.Delete(ctx, keys...)
	}
}
