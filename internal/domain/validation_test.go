package domain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/aman-soni-070202/my-finances/internal/domain"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid name", "Everyday Checking", false},
		{"empty name", "", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("a", 256), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateName(%q) = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAmount(t *testing.T) {
	huge, _ := decimal.NewFromString("1000000000001")

	tests := []struct {
		name    string
		amount  decimal.Decimal
		wantErr error
	}{
		{"valid", decimal.NewFromInt(100), nil},
		{"small fraction", decimal.RequireFromString("0.01"), nil},
		{"zero", decimal.Zero, domain.ErrInvalidAmount},
		{"negative", decimal.NewFromInt(-1), domain.ErrInvalidAmount},
		{"too large", huge, domain.ErrAmountTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateAmount(tt.amount)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateAmount(%s) = %v, want %v", tt.amount, err, tt.wantErr)
			}
		})
	}
}

func TestValidateStatsPeriod(t *testing.T) {
	if err := domain.ValidateStatsPeriod(1, 2024); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := domain.ValidateStatsPeriod(13, 2024); err == nil {
		t.Fatalf("expected error for month 13")
	}

	if err := domain.ValidateStatsPeriod(1, 12024); err == nil {
		t.Fatalf("expected error for absurd year")
	}
}

func TestValidatePagination(t *testing.T) {
	limit, offset := domain.ValidatePagination(0, -5)
	if limit != 50 || offset != 0 {
		t.Fatalf("expected defaults 50/0, got %d/%d", limit, offset)
	}

	limit, _ = domain.ValidatePagination(5000, 0)
	if limit != 1000 {
		t.Fatalf("expected limit clamped to 1000, got %d", limit)
	}
}

func TestAccountTypeValid(t *testing.T) {
	for _, typ := range []domain.AccountType{
		domain.AccountChecking, domain.AccountSavings, domain.AccountCredit, domain.AccountInvestment,
	} {
		if !typ.Valid() {
			t.Fatalf("expected %s to be valid", typ)
		}
	}

	if domain.AccountType("offshore").Valid() {
		t.Fatalf("expected unknown type to be invalid")
	}
}
