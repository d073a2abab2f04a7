package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/aman-soni-070202/my-finances/internal/domain"
	"github.com/aman-soni-070202/my-finances/internal/usecase"
	"github.com/aman-soni-070202/my-finances/internal/usecase/mocks"
)

func TestAccountUseCase_CreateAccount(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateAccountInput
		expectError bool
		errorType   error
	}{
		{
			name: "successful create",
			input: usecase.CreateAccountInput{
				Name:          "Main",
				AccountNumber: "1234",
				BankName:      "First Bank",
				Type:          domain.AccountChecking,
				Balance:       decimal.NewFromInt(1000),
			},
		},
		{
			name: "reject empty name",
			input: usecase.CreateAccountInput{
				Name: "   ",
				Type: domain.AccountChecking,
			},
			expectError: true,
			errorType:   domain.ErrInvalidName,
		},
		{
			name: "reject overlong name",
			input: usecase.CreateAccountInput{
				Name: strings.Repeat("x", 300),
				Type: domain.AccountChecking,
			},
			expectError: true,
			errorType:   domain.ErrInvalidName,
		},
		{
			name: "reject unknown type",
			input: usecase.CreateAccountInput{
				Name: "Main",
				Type: domain.AccountType("offshore"),
			},
			expectError: true,
			errorType:   domain.ErrInvalidAccountType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockAccountRepository()
			uc := usecase.NewAccountUseCase(repo, mocks.NewMockIDGenerator())

			account, err := uc.CreateAccount(context.Background(), tt.input)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errorType != nil && !errors.Is(err, tt.errorType) {
					t.Errorf("expected %v, got %v", tt.errorType, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if account.ID == "" {
				t.Error("expected generated ID")
			}
			if !account.InitialBalance.Equal(tt.input.Balance) {
				t.Errorf("expected initial balance %s, got %s", tt.input.Balance, account.InitialBalance)
			}
			if account.CreatedAt.IsZero() || account.UpdatedAt.IsZero() {
				t.Error("expected timestamps set")
			}
		})
	}
}

func TestAccountUseCase_UpdateAccount(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	uc := usecase.NewAccountUseCase(repo, mocks.NewMockIDGenerator())

	account, err := uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		Name:    "Main",
		Type:    domain.AccountChecking,
		Balance: decimal.NewFromInt(500),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newName := "Household"
	savings := domain.AccountSavings
	updated, err := uc.UpdateAccount(context.Background(), account.ID, domain.BankAccountPatch{
		Name: &newName,
		Type: &savings,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Household" || updated.Type != domain.AccountSavings {
		t.Errorf("patch not applied: %+v", updated)
	}
	if !updated.Balance.Equal(decimal.NewFromInt(500)) {
		t.Errorf("balance must not change on update, got %s", updated.Balance)
	}

	bad := domain.AccountType("offshore")
	if _, err := uc.UpdateAccount(context.Background(), account.ID, domain.BankAccountPatch{Type: &bad}); !errors.Is(err, domain.ErrInvalidAccountType) {
		t.Errorf("expected ErrInvalidAccountType, got %v", err)
	}

	if _, err := uc.UpdateAccount(context.Background(), "missing", domain.BankAccountPatch{Name: &newName}); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountUseCase_DeleteAccount(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	uc := usecase.NewAccountUseCase(repo, mocks.NewMockIDGenerator())

	account, err := uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		Name: "Main",
		Type: domain.AccountChecking,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := uc.DeleteAccount(context.Background(), account.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := uc.GetAccount(context.Background(), account.ID); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestCardUseCase_CreateCard2(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateCardInput
		expectError bool
		errorType   error
	}{
		{
			name: "successful create",
			input: usecase.CreateCardInput{
				Name:        "Travel Card",
				CardNumber:  "9876",
				CreditLimit: decimal.NewFromInt(5000),
			},
		},
		{
			name: "negative opening balance is allowed",
			input: usecase.CreateCardInput{
				Name:          "Travel Card",
				CreditLimit:   decimal.NewFromInt(5000),
				CreditBalance: decimal.NewFromInt(-250),
			},
		},
		{
			name: "reject empty name",
			input: usecase.CreateCardInput{
				Name: "",
			},
			expectError: true,
			errorType:   domain.ErrInvalidName,
		},
		{
			name: "reject negative credit limit",
			input: usecase.CreateCardInput{
				Name:        "Travel Card",
				CreditLimit: decimal.NewFromInt(-1),
			},
			expectError: true,
			errorType:   domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockCardRepository()
			uc := usecase.NewCardUseCase(repo, mocks.NewMockIDGenerator())

			card, err := uc.CreateCard(context.Background(), tt.input)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errorType != nil && !errors.Is(err, tt.errorType) {
					t.Errorf("expected %v, got %v", tt.errorType, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !card.InitialBalance.Equal(tt.input.CreditBalance) {
				t.Errorf("expected initial balance %s, got %s", tt.input.CreditBalance, card.InitialBalance)
			}
		})
	}
}

func TestCardUseCase_UpdateCard2(t *testing.T) {
	repo := mocks.NewMockCardRepository()
	uc := usecase.NewCardUseCase(repo, mocks.NewMockIDGenerator())

	card, err := uc.CreateCard(context.Background(), usecase.CreateCardInput{
		Name:        "Travel Card",
		CreditLimit: decimal.NewFromInt(5000),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newLimit := decimal.NewFromInt(8000)
	updated, err := uc.UpdateCard(context.Background(), card.ID, domain.CreditCardPatch{
		CreditLimit: &newLimit,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.CreditLimit.Equal(newLimit) {
		t.Errorf("expected limit 8000, got %s", updated.CreditLimit)
	}

	if _, err := uc.UpdateCard(context.Background(), "missing", domain.CreditCardPatch{CreditLimit: &newLimit}); !errors.Is(err, domain.ErrCardNotFound) {
		t.Errorf("expected ErrCardNotFound, got %v", err)
	}
}
