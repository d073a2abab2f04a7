package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aman-soni-070202/my-finances/internal/domain"
	"github.com/aman-soni-070202/my-finances/internal/usecase"
)

// CategoryRepository implements usecase.CategoryRepository. Categories are
// (kind, name) pairs with no further attributes.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// ListByKind retrieves the category names registered for a kind, in
// registration order.
func (r *CategoryRepository) ListByKind(ctx context.Context, kind domain.TransactionKind) ([]string, error) {
	query := `
		SELECT name
		FROM categories
		WHERE kind = $1
		ORDER BY position, name
	`

	rows, err := r.pool.Query(ctx, query, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// Exists reports whether a category is registered under a kind.
func (r *CategoryRepository) Exists(ctx context.Context, kind domain.TransactionKind, name string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM categories WHERE kind = $1 AND name = $2)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, kind, name).Scan(&exists)

	return exists, err
}

// Add registers a category name under a kind.
func (r *CategoryRepository) Add(ctx context.Context, kind domain.TransactionKind, name string) error {
	query := `
		INSERT INTO categories (kind, name, position)
		VALUES ($1, $2, (SELECT COALESCE(MAX(position), 0) + 1 FROM categories WHERE kind = $1))
	`

	_, err := r.pool.Exec(ctx, query, kind, name)

	return err
}

// Remove deletes a category name from a kind.
func (r *CategoryRepository) Remove(ctx context.Context, kind domain.TransactionKind, name string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE kind = $1 AND name = $2`, kind, name)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}

	return nil
}

// ReplaceAll wipes the registry and inserts the given categories. Used by
// the backup importer.
func (r *CategoryRepository) ReplaceAll(ctx context.Context, tx usecase.Transaction, categories map[domain.TransactionKind][]string) error {
	pgxTx := tx.(*Tx).PgxTx()

	if _, err := pgxTx.Exec(ctx, `DELETE FROM categories`); err != nil {
		return err
	}

	query := `INSERT INTO categories (kind, name, position) VALUES ($1, $2, $3)`

	for kind, names := range categories {
		for i, name := range names {
			if _, err := pgxTx.Exec(ctx, query, kind, name, i+1); err != nil {
				return err
			}
		}
	}

	return nil
}
