package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/aman-soni-070202/my-finances/internal/adapter/http/dto"
)

func TestReconciliation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	account := env.DB.CreateTestAccount(ctx, "Main", decimal.NewFromInt(1000))
	card := env.DB.CreateTestCard(ctx, "Everyday", decimal.NewFromInt(5000), decimal.Zero)

	w := postJSON(t, env.Router, "/api/v1/transactions", dto.CreateTransactionRequest{
		Amount:        decimal.NewFromInt(300),
		Kind:          "expense",
		Category:      "Shopping",
		PaymentMethod: dto.PaymentMethodRef{ID: account.ID},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	check := func() dto.ReconciliationResponse {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/ledger/reconciliation", nil)
		rec := httptest.NewRecorder()
		env.Router.ServeHTTP(rec, r)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var resp dto.ReconciliationResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		return resp
	}

	t.Run("consistent ledger reports no discrepancies", func(t *testing.T) {
		resp := check()

		if resp.Discrepancies != 0 {
			t.Fatalf("expected no discrepancies, got %+v", resp)
		}

		if len(resp.Methods) != 2 {
			t.Fatalf("expected 2 methods checked, got %d", len(resp.Methods))
		}
	})

	t.Run("tampered balance is detected", func(t *testing.T) {
		env.DB.TamperAccountBalance(ctx, account.ID, decimal.NewFromInt(9999))

		resp := check()

		if resp.Discrepancies != 1 {
			t.Fatalf("expected 1 discrepancy, got %d", resp.Discrepancies)
		}

		for _, m := range resp.Methods {
			if m.MethodID == account.ID {
				if m.Consistent {
					t.Fatal("tampered account reported consistent")
				}
				// recorded 9999, expected 1000 - 300 = 700
				if m.Difference != "9299" {
					t.Fatalf("expected difference 9299, got %s", m.Difference)
				}
			}
			if m.MethodID == card.ID && !m.Consistent {
				t.Fatal("untouched card reported inconsistent")
			}
		}
	})
}

func TestAuditTrail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	account := env.DB.CreateTestAccount(ctx, "Main", decimal.NewFromInt(100))

	w := postJSON(t, env.Router, "/api/v1/transactions", dto.CreateTransactionRequest{
		Amount:        decimal.NewFromInt(25),
		Kind:          "expense",
		Category:      "Food",
		PaymentMethod: dto.PaymentMethodRef{ID: account.ID},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	r := httptest.NewRequest(http.MethodGet, "/api/v1/ledger/audit?action=transaction.create", nil)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var logs []*dto.AuditLogResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &logs); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(logs) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(logs))
	}

	if logs[0].MethodID != account.ID || logs[0].Delta != "-25" {
		t.Fatalf("unexpected audit entry: %+v", logs[0])
	}
}
