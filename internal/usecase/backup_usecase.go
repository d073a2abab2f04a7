package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aman-soni-070202/my-finances/internal/domain"
	"github.com/aman-soni-070202/my-finances/internal/infrastructure/metrics"
)

// BackupUseCase exports the whole ledger as one JSON document and restores
// it again. Import is destructive: it replaces everything inside a single
// database transaction, so a half-applied restore can never be observed.
type BackupUseCase struct {
	txManager       TransactionManager
	transactionRepo TransactionRepository
	accountRepo     AccountRepository
	cardRepo        CardRepository
	categoryRepo    CategoryRepository
	auditRepo       AuditRepository
	idGen           IDGenerator
	cache           Cache
	metrics         *metrics.Metrics
}

// NewBackupUseCase creates a new BackupUseCase.
func NewBackupUseCase(
	txManager TransactionManager,
	transactionRepo TransactionRepository,
	accountRepo AccountRepository,
	cardRepo CardRepository,
	categoryRepo CategoryRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	cache Cache,
) *BackupUseCase {
	return &BackupUseCase{
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

// WithMetrics enables Prometheus instrumentation.
func (uc *BackupUseCase) WithMetrics(m *metrics.Metrics) *BackupUseCase {
	uc.metrics = m
	return uc
}

// Export builds a snapshot of every transaction, category, bank account and
// credit card.
func (uc *BackupUseCase) Export(ctx context.Context) (*domain.Backup, error) {
	transactions, err := uc.transactionRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	categories := make(map[domain.TransactionKind][]string, 2)
	for _, kind := range []domain.TransactionKind{domain.KindExpense, domain.KindIncome} {
		names, err := uc.categoryRepo.ListByKind(ctx, kind)
		if err != nil {
			return nil, err
		}

		categories[kind] = names
	}

	accounts, err := uc.accountRepo.List(ctx, domain.MaxPageSize, 0)
	if err != nil {
		return nil, err
	}

	cards, err := uc.cardRepo.List(ctx, domain.MaxPageSize, 0)
	if err != nil {
		return nil, err
	}

	backup := &domain.Backup{
		Transactions: make([]domain.BackupTransaction, 0, len(transactions)),
		Categories:   categories,
		BankAccounts: make([]domain.BankAccountSnapshot, 0, len(accounts)),
		CreditCards:  make([]domain.CreditCardSnapshot, 0, len(cards)),
		ExportDate:   time.Now().UTC(),
	}

	for _, t := range transactions {
		backup.Transactions = append(backup.Transactions, domain.BackupTransaction{
			ID:       t.ID,
			Date:     t.OccurredAt,
			Amount:   t.Amount,
			Kind:     t.Kind,
			Category: t.Category,
			Note:     t.Note,
			PaymentMethod: domain.BackupPaymentMethod{
				ID:            t.PaymentMethod.ID,
				Name:          t.PaymentMethodName,
				IsCard:        t.PaymentMethod.IsCard,
				CardNumber:    cardNumberOf(t),
				AccountNumber: accountNumberOf(t),
				BankName:      t.BankName,
			},
		})
	}

	for _, a := range accounts {
		backup.BankAccounts = append(backup.BankAccounts, domain.BankAccountSnapshot{
			ID:            a.ID,
			Name:          a.Name,
			AccountNumber: a.AccountNumber,
			BankName:      a.BankName,
			Balance:       a.Balance,
			Type:          a.Type,
		})
	}

	for _, c := range cards {
		backup.CreditCards = append(backup.CreditCards, domain.CreditCardSnapshot{
			ID:            c.ID,
			Name:          c.Name,
			CardNumber:    c.CardNumber,
			CreditLimit:   c.CreditLimit,
			CreditBalance: c.CreditBalance,
		})
	}

	if uc.metrics != nil {
		uc.metrics.BackupExports.Inc()
	}

	return backup, nil
}

// ImportResult reports what a restore brought in.
type ImportResult struct {
	Transactions int
	BankAccounts int
	CreditCards  int
}

// Import replaces the entire ledger with the contents of a backup. Balances
// are taken from the snapshots as-is; each method's opening balance is
// recomputed as snapshot balance minus the signed sum of the imported
// transactions referencing it, so reconciliation still closes afterwards.
func (uc *BackupUseCase) Import(ctx context.Context, backup *domain.Backup) (*ImportResult, error) {
	for i := range backup.Transactions {
		bt := &backup.Transactions[i]

		if !bt.Kind.Valid() {
			return nil, domain.ErrInvalidKind
		}

		if bt.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrInvalidAmount
		}

		if bt.PaymentMethod.ID == "" {
			return nil, domain.ErrPaymentMethodRequired
		}
	}

	categories := backup.Categories
	if len(categories) == 0 {
		categories = domain.DefaultCategories
	}

	// Backups from old versions may reference categories they never list.
	categories = withTransactionCategories(categories, backup.Transactions)

	signedSums := signedSumsByMethod(backup.Transactions)

	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.transactionRepo.DeleteAll(ctx, tx); err != nil {
		return nil, err
	}

	if err := uc.categoryRepo.ReplaceAll(ctx, tx, categories); err != nil {
		return nil, err
	}

	accounts := make([]*domain.BankAccount, 0, len(backup.BankAccounts))
	for _, snap := range backup.BankAccounts {
		accountType := snap.Type
		if !accountType.Valid() {
			accountType = domain.AccountChecking
		}

		accounts = append(accounts, &domain.BankAccount{
			ID:             snap.ID,
			Name:           snap.Name,
			AccountNumber:  snap.AccountNumber,
			BankName:       snap.BankName,
			Type:           accountType,
			Balance:        snap.Balance,
			InitialBalance: snap.Balance.Sub(signedSums[domain.PaymentMethodRef{ID: snap.ID}]),
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	if err := uc.accountRepo.ReplaceAll(ctx, tx, accounts); err != nil {
		return nil, err
	}

	cards := make([]*domain.CreditCard, 0, len(backup.CreditCards))
	for _, snap := range backup.CreditCards {
		cards = append(cards, &domain.CreditCard{
			ID:             snap.ID,
			Name:           snap.Name,
			CardNumber:     snap.CardNumber,
			CreditLimit:    snap.CreditLimit,
			CreditBalance:  snap.CreditBalance,
			InitialBalance: snap.CreditBalance.Sub(signedSums[domain.PaymentMethodRef{ID: snap.ID, IsCard: true}]),
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	if err := uc.cardRepo.ReplaceAll(ctx, tx, cards); err != nil {
		return nil, err
	}

	for _, bt := range backup.Transactions {
		id := bt.ID
		if id == "" {
			id = uc.idGen.Generate()
		}

		transaction := &domain.Transaction{
			ID:         id,
			OccurredAt: bt.Date,
			Amount:     bt.Amount,
			Kind:       bt.Kind,
			Category:   bt.Category,
			Note:       bt.Note,
			PaymentMethod: domain.PaymentMethodRef{
				ID:     bt.PaymentMethod.ID,
				IsCard: bt.PaymentMethod.IsCard,
			},
			CreatedAt: now,
		}

		// Balances come from the snapshots, not from replaying deltas.
		if err := uc.transactionRepo.Create(ctx, tx, transaction); err != nil {
			return nil, err
		}
	}

	audit := &domain.AuditLog{
		ID:     uc.idGen.Generate(),
		Action: domain.AuditActionBackupImport,
		AfterState: domain.JSON{
			"transactions": len(backup.Transactions),
			"bankAccounts": len(backup.BankAccounts),
			"creditCards":  len(backup.CreditCards),
		},
		Status:    domain.AuditStatusSuccess,
		CreatedAt: now,
	}

	if err := uc.auditRepo.CreateTx(ctx, tx, audit); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		_ = uc.cache.DeleteByPrefix(ctx, "stats:")
	}

	if uc.metrics != nil {
		uc.metrics.BackupImports.Inc()
		uc.metrics.BackupImportedEntries.Observe(float64(len(backup.Transactions)))
	}

	return &ImportResult{
		Transactions: len(backup.Transactions),
		BankAccounts: len(backup.BankAccounts),
		CreditCards:  len(backup.CreditCards),
	}, nil
}

func cardNumberOf(t *domain.Transaction) string {
	if t.PaymentMethod.IsCard {
		return t.PaymentMethodNumber
	}

	return ""
}

func accountNumberOf(t *domain.Transaction) string {
	if t.PaymentMethod.IsCard {
		return ""
	}

	return t.PaymentMethodNumber
}

// withTransactionCategories returns a copy of categories extended with any
// category name a transaction references but the registry omits.
func withTransactionCategories(categories map[domain.TransactionKind][]string, transactions []domain.BackupTransaction) map[domain.TransactionKind][]string {
	merged := make(map[domain.TransactionKind][]string, len(categories))
	known := make(map[domain.TransactionKind]map[string]bool, len(categories))

	for kind, names := range categories {
		merged[kind] = append([]string(nil), names...)

		set := make(map[string]bool, len(names))
		for _, n := range names {
			set[n] = true
		}

		known[kind] = set
	}

	for _, t := range transactions {
		if t.Category == "" {
			continue
		}

		if known[t.Kind] == nil {
			known[t.Kind] = make(map[string]bool)
		}

		if !known[t.Kind][t.Category] {
			known[t.Kind][t.Category] = true
			merged[t.Kind] = append(merged[t.Kind], t.Category)
		}
	}

	return merged
}

// signedSumsByMethod keys on the full method reference: an account and a
// card sharing an ID must not have their sums merged.
func signedSumsByMethod(transactions []domain.BackupTransaction) map[domain.PaymentMethodRef]decimal.Decimal {
	sums := make(map[domain.PaymentMethodRef]decimal.Decimal)

	for _, t := range transactions {
		signed := t.Amount
		if t.Kind == domain.KindExpense {
			signed = signed.Neg()
		}

		ref := domain.PaymentMethodRef{ID: t.PaymentMethod.ID, IsCard: t.PaymentMethod.IsCard}
		sums[ref] = sums[ref].Add(signed)
	}

	return sums
}
