package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aman-soni-070202/my-finances/internal/usecase"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// BalanceChecks returns, for every payment method, its recorded balance,
// its opening balance and the signed sum of the transactions referencing
// it. Signed means +amount for income rows and -amount for expense rows.
func (r *LedgerRepository) BalanceChecks(ctx context.Context) ([]usecase.BalanceCheck, error) {
	query := `
		WITH sums AS (
			SELECT method_id, method_is_card,
			       SUM(CASE WHEN kind = 'income' THEN amount ELSE -amount END) AS signed_sum
			FROM transactions
			GROUP BY method_id, method_is_card
		)
		SELECT a.id, a.name, false, a.balance, a.initial_balance, COALESCE(s.signed_sum, 0)
		FROM bank_accounts a
		LEFT JOIN sums s ON s.method_id = a.id AND NOT s.method_is_card
		UNION ALL
		SELECT c.id, c.name, true, c.credit_balance, c.initial_balance, COALESCE(s.signed_sum, 0)
		FROM credit_cards c
		LEFT JOIN sums s ON s.method_id = c.id AND s.method_is_card
		ORDER BY 3, 2, 1
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checks []usecase.BalanceCheck
	for rows.Next() {
		var (
			check          usecase.BalanceCheck
			recorded       pgtype.Numeric
			initial        pgtype.Numeric
			transactionSum pgtype.Numeric
		)

		err := rows.Scan(
			&check.MethodID,
			&check.Name,
			&check.IsCard,
			&recorded,
			&initial,
			&transactionSum,
		)
		if err != nil {
			return nil, err
		}

		check.RecordedBalance = numericToDecimal(recorded)
		check.InitialBalance = numericToDecimal(initial)
		check.TransactionSum = numericToDecimal(transactionSum)
		checks = append(checks, check)
	}

	return checks, rows.Err()
}
