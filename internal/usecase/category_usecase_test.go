package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aman-soni-070202/my-finances/internal/domain"
	"github.com/aman-soni-070202/my-finances/internal/usecase"
	"github.com/aman-soni-070202/my-finances/internal/usecase/mocks"
)

func TestCategoryUseCase_ListCategories(t *testing.T) {
	uc := usecase.NewCategoryUseCase(mocks.NewMockCategoryRepository())

	names, err := uc.ListCategories(context.Background(), domain.KindExpense)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) == 0 {
		t.Error("expected seeded expense categories")
	}

	if _, err := uc.ListCategories(context.Background(), domain.TransactionKind("transfer")); !errors.Is(err, domain.ErrInvalidKind) {
		t.Errorf("expected ErrInvalidKind, got %v", err)
	}
}

func TestCategoryUseCase_AddCategory(t *testing.T) {
	repo := mocks.NewMockCategoryRepository()
	uc := usecase.NewCategoryUseCase(repo)

	if err := uc.AddCategory(context.Background(), domain.KindExpense, "  Subscriptions  "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Names are trimmed before storage.
	exists, err := repo.Exists(context.Background(), domain.KindExpense, "Subscriptions")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Error("expected trimmed category registered")
	}

	if err := uc.AddCategory(context.Background(), domain.KindExpense, "Subscriptions"); !errors.Is(err, domain.ErrDuplicateCategory) {
		t.Errorf("expected ErrDuplicateCategory, got %v", err)
	}

	// The same name under the other kind is a different category.
	if err := uc.AddCategory(context.Background(), domain.KindIncome, "Subscriptions"); err != nil {
		t.Errorf("expected add under income to succeed, got %v", err)
	}

	if err := uc.AddCategory(context.Background(), domain.KindExpense, "   "); !errors.Is(err, domain.ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}
}

func TestCategoryUseCase_RemoveCategory(t *testing.T) {
	repo := mocks.NewMockCategoryRepository()
	uc := usecase.NewCategoryUseCase(repo)

	if err := uc.RemoveCategory(context.Background(), domain.KindExpense, "Food"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	exists, _ := repo.Exists(context.Background(), domain.KindExpense, "Food")
	if exists {
		t.Error("expected Food removed")
	}

	if err := uc.RemoveCategory(context.Background(), domain.KindExpense, "Food"); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}
