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
	"github.com/shopspring/decimal"

	"github.com/aman-soni-070202/my-finances/internal/domain"
	"github.com/aman-soni-070202/my-finances/internal/usecase"
)

// CardRepository implements usecase.CardRepository.
type CardRepository struct {
	pool *pgxpool.Pool
}

// NewCardRepository creates a new CardRepository.
func NewCardRepository(pool *pgxpool.Pool) *CardRepository {
	return &CardRepository{pool: pool}
}

const selectCard = `
	SELECT id, name, card_number, credit_limit, credit_balance, initial_balance, created_at, updated_at
	FROM credit_cards
`

// Create inserts a new credit card.
func (r *CardRepository) Create(ctx context.Context, card *domain.CreditCard) error {
	query := `
		INSERT INTO credit_cards (id, name, card_number, credit_limit, credit_balance, initial_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		card.ID,
		card.Name,
		card.CardNumber,
		decimalToNumeric(card.CreditLimit),
		decimalToNumeric(card.CreditBalance),
		decimalToNumeric(card.InitialBalance),
		timeToPgTimestamptz(card.CreatedAt),
		timeToPgTimestamptz(card.UpdatedAt),
	)

	return err
}

// GetByID retrieves a credit card by ID.
func (r *CardRepository) GetByID(ctx context.Context, id string) (*domain.CreditCard, error) {
	card, err := scanCard(r.pool.QueryRow(ctx, selectCard+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCardNotFound
	}

	return card, err
}

// Update applies a partial update and returns the updated card.
func (r *CardRepository) Update(ctx context.Context, id string, patch domain.CreditCardPatch, updatedAt time.Time) (*domain.CreditCard, error) {
	var (
		sets []string
		args []any
	)

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.CardNumber != nil {
		add("card_number", *patch.CardNumber)
	}
	if patch.CreditLimit != nil {
		add("credit_limit", decimalToNumeric(*patch.CreditLimit))
	}

	add("updated_at", timeToPgTimestamptz(updatedAt))

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE credit_cards SET %s WHERE id = $%d
		RETURNING id, name, card_number, credit_limit, credit_balance, initial_balance, created_at, updated_at
	`, strings.Join(sets, ", "), len(args))

	card, err := scanCard(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCardNotFound
	}

	return card, err
}

// Delete removes a credit card.
func (r *CardRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM credit_cards WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCardNotFound
	}

	return nil
}

// List retrieves credit cards with pagination.
func (r *CardRepository) List(ctx context.Context, limit, offset int) ([]*domain.CreditCard, error) {
	query := selectCard + `
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []*domain.CreditCard
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	return cards, rows.Err()
}

// AdjustBalance atomically increments the credit balance by delta inside the
// given transaction and returns the new balance.
func (r *CardRepository) AdjustBalance(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) (decimal.Decimal, error) {
	query := `
		UPDATE credit_cards
		SET credit_balance = credit_balance + $2, updated_at = $3
		WHERE id = $1
		RETURNING credit_balance
	`

	var balance pgtype.Numeric
	err := tx.(*Tx).PgxTx().QueryRow(ctx, query, id, decimalToNumeric(delta), timeToPgTimestamptz(updatedAt)).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, domain.ErrCardNotFound
	}
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(balance), nil
}

// ReplaceAll wipes the table and inserts the given cards. Used by the backup
// importer.
func (r *CardRepository) ReplaceAll(ctx context.Context, tx usecase.Transaction, cards []*domain.CreditCard) error {
	pgxTx := tx.(*Tx).PgxTx()

	if _, err := pgxTx.Exec(ctx, `DELETE FROM credit_cards`); err != nil {
		return err
	}

	query := `
		INSERT INTO credit_cards (id, name, card_number, credit_limit, credit_balance, initial_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, card := range cards {
		_, err := pgxTx.Exec(ctx, query,
			card.ID,
			card.Name,
			card.CardNumber,
			decimalToNumeric(card.CreditLimit),
			decimalToNumeric(card.CreditBalance),
			decimalToNumeric(card.InitialBalance),
			timeToPgTimestamptz(card.CreatedAt),
			timeToPgTimestamptz(card.UpdatedAt),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func scanCard(row pgx.Row) (*domain.CreditCard, error) {
	var (
		card           domain.CreditCard
		creditLimit    pgtype.Numeric
		creditBalance  pgtype.Numeric
		initialBalance pgtype.Numeric
		createdAt      pgtype.Timestamptz
		updatedAt      pgtype.Timestamptz
	)

	err := row.Scan(
		&card.ID,
		&card.Name,
		&card.CardNumber,
		&creditLimit,
		&creditBalance,
		&initialBalance,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	card.CreditLimit = numericToDecimal(creditLimit)
	card.CreditBalance = numericToDecimal(creditBalance)
	card.InitialBalance = numericToDecimal(initialBalance)
	card.CreatedAt = createdAt.Time
	card.UpdatedAt = updatedAt.Time

	return &card, nil
}
