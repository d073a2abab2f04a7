package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aman-soni-070202/my-finances/internal/domain"
	"github.com/aman-soni-070202/my-finances/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// selectTransaction resolves the display fields from whichever table the
// method flag points at. A deleted method leaves them empty.
const selectTransaction = `
	SELECT t.id, t.occurred_at, t.amount, t.kind, t.category, t.note,
	       t.method_id, t.method_is_card,
	       COALESCE(CASE WHEN t.method_is_card THEN c.name ELSE a.name END, ''),
	       COALESCE(CASE WHEN t.method_is_card THEN c.card_number ELSE a.account_number END, ''),
	       COALESCE(a.bank_name, ''),
	       t.created_at
	FROM transactions t
	LEFT JOIN bank_accounts a ON NOT t.method_is_card AND a.id = t.method_id
	LEFT JOIN credit_cards c ON t.method_is_card AND c.id = t.method_id
`

// Create inserts a new transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, occurred_at, amount, kind, category, note, method_id, method_is_card, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := tx.(*Tx).PgxTx().Exec(ctx, query,
		t.ID,
		timeToPgTimestamptz(t.OccurredAt),
		decimalToNumeric(t.Amount),
		t.Kind,
		t.Category,
		t.Note,
		t.PaymentMethod.ID,
		t.PaymentMethod.IsCard,
		timeToPgTimestamptz(t.CreatedAt),
	)

	return err
}

// GetByID retrieves a transaction by ID with its display fields resolved.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := selectTransaction + ` WHERE t.id = $1`

	t, err := scanTransaction(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}

	return t, err
}

// GetByIDForUpdate retrieves a transaction by ID with a FOR UPDATE lock.
// Display fields are not resolved; the engine only needs the core row.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	query := `
		SELECT id, occurred_at, amount, kind, category, note, method_id, method_is_card, created_at
		FROM transactions
		WHERE id = $1
		FOR UPDATE
	`

	var (
		t          domain.Transaction
		occurredAt pgtype.Timestamptz
		amount     pgtype.Numeric
		createdAt  pgtype.Timestamptz
	)

	err := tx.(*Tx).PgxTx().QueryRow(ctx, query, id).Scan(
		&t.ID,
		&occurredAt,
		&amount,
		&t.Kind,
		&t.Category,
		&t.Note,
		&t.PaymentMethod.ID,
		&t.PaymentMethod.IsCard,
		&createdAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}

	t.OccurredAt = occurredAt.Time
	t.Amount = numericToDecimal(amount)
	t.CreatedAt = createdAt.Time

	return &t, nil
}

// Update applies a partial update. Only the patched columns are touched.
func (r *TransactionRepository) Update(ctx context.Context, tx usecase.Transaction, id string, patch domain.TransactionPatch) error {
	var (
		sets []string
		args []any
	)

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.OccurredAt != nil {
		add("occurred_at", timeToPgTimestamptz(*patch.OccurredAt))
	}
	if patch.Amount != nil {
		add("amount", decimalToNumeric(*patch.Amount))
	}
	if patch.Kind != nil {
		add("kind", *patch.Kind)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Note != nil {
		add("note", *patch.Note)
	}
	if patch.PaymentMethod != nil {
		add("method_id", patch.PaymentMethod.ID)
		add("method_is_card", patch.PaymentMethod.IsCard)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE transactions SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	tag, err := tx.(*Tx).PgxTx().Exec(ctx, query, args...)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// Delete removes a transaction.
func (r *TransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	tag, err := tx.(*Tx).PgxTx().Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// DeleteAll removes every transaction. Used by the backup importer.
func (r *TransactionRepository) DeleteAll(ctx context.Context, tx usecase.Transaction) error {
	_, err := tx.(*Tx).PgxTx().Exec(ctx, `DELETE FROM transactions`)
	return err
}

// List retrieves transactions with pagination, newest first.
func (r *TransactionRepository) List(ctx context.Context, limit, offset int) ([]*domain.Transaction, error) {
	query := selectTransaction + `
		ORDER BY t.occurred_at DESC, t.id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListAll retrieves every transaction, newest first.
func (r *TransactionRepository) ListAll(ctx context.Context) ([]*domain.Transaction, error) {
	query := selectTransaction + ` ORDER BY t.occurred_at DESC, t.id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListByDateRange retrieves transactions within [start, end], newest first.
func (r *TransactionRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Transaction, error) {
	query := selectTransaction + `
		WHERE t.occurred_at >= $1 AND t.occurred_at <= $2
		ORDER BY t.occurred_at DESC, t.id DESC
	`

	rows, err := r.pool.Query(ctx, query, timeToPgTimestamptz(start), timeToPgTimestamptz(end))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// TotalsByMonth aggregates one year of transactions into per-month, per-kind
// sums. Months with no rows are absent from the result. Bucketing converts
// to UTC explicitly: EXTRACT on a timestamptz follows the session timezone,
// and the month boundaries must match the UTC range bounds.
func (r *TransactionRepository) TotalsByMonth(ctx context.Context, year int) ([]usecase.MonthKindTotal, error) {
	query := `
		SELECT EXTRACT(MONTH FROM occurred_at AT TIME ZONE 'UTC')::int AS month, kind, SUM(amount)
		FROM transactions
		WHERE occurred_at >= $1 AND occurred_at < $2
		GROUP BY month, kind
		ORDER BY month, kind
	`

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	rows, err := r.pool.Query(ctx, query, timeToPgTimestamptz(start), timeToPgTimestamptz(end))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []usecase.MonthKindTotal
	for rows.Next() {
		var (
			row   usecase.MonthKindTotal
			total pgtype.Numeric
		)

		if err := rows.Scan(&row.Month, &row.Kind, &total); err != nil {
			return nil, err
		}

		row.Total = numericToDecimal(total)
		totals = append(totals, row)
	}

	return totals, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		t          domain.Transaction
		occurredAt pgtype.Timestamptz
		amount     pgtype.Numeric
		createdAt  pgtype.Timestamptz
	)

	err := row.Scan(
		&t.ID,
		&occurredAt,
		&amount,
		&t.Kind,
		&t.Category,
		&t.Note,
		&t.PaymentMethod.ID,
		&t.PaymentMethod.IsCard,
		&t.PaymentMethodName,
		&t.PaymentMethodNumber,
		&t.BankName,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	t.OccurredAt = occurredAt.Time
	t.Amount = numericToDecimal(amount)
	t.CreatedAt = createdAt.Time

	return &t, nil
}

func scanTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var transactions []*domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	return transactions, rows.Err()
}
