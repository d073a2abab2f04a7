package usecase

import (
	"context"
	"strings"

	"github.com/aman-soni-070202/my-finances/internal/domain"
)

// CategoryUseCase handles the per-kind category registry.
type CategoryUseCase struct {
	categoryRepo CategoryRepository
}

// NewCategoryUseCase creates a new CategoryUseCase.
func NewCategoryUseCase(categoryRepo CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo}
}

// ListCategories returns the category names registered for a kind.
func (uc *CategoryUseCase) ListCategories(ctx context.Context, kind domain.TransactionKind) ([]string, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidKind
	}

	return uc.categoryRepo.ListByKind(ctx, kind)
}

// AddCategory registers a new category name under a kind. The same name may
// exist under both kinds; duplicates within a kind are rejected.
func (uc *CategoryUseCase) AddCategory(ctx context.Context, kind domain.TransactionKind, name string) error {
	if !kind.Valid() {
		return domain.ErrInvalidKind
	}

	name = strings.TrimSpace(name)
	if err := domain.ValidateName(name); err != nil {
		return err
	}

	exists, err := uc.categoryRepo.Exists(ctx, kind, name)
	if err != nil {
		return err
	}

	if exists {
		return domain.ErrDuplicateCategory
	}

	return uc.categoryRepo.Add(ctx, kind, name)
}

// RemoveCategory removes a category name from a kind. Existing transactions
// keep the name as plain text.
func (uc *CategoryUseCase) RemoveCategory(ctx context.Context, kind domain.TransactionKind, name string) error {
	if !kind.Valid() {
		return domain.ErrInvalidKind
	}

	return uc.categoryRepo.Remove(ctx, kind, name)
}
