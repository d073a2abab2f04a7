package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aman-soni-070202/my-finances/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrTransactionNotFound, http.StatusNotFound},
		{domain.ErrAccountNotFound, http.StatusNotFound},
		{domain.ErrCardNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: transaction tx-1 references acc-9", domain.ErrPaymentMethodNotFound), http.StatusNotFound},
		{domain.ErrDuplicateCategory, http.StatusConflict},
		{domain.ErrInvalidAmount, http.StatusBadRequest},
		{domain.ErrInvalidKind, http.StatusBadRequest},
		{domain.ErrUnknownCategory, http.StatusBadRequest},
		{domain.ErrInvalidStatsTime, http.StatusBadRequest},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := mapDomainError(tt.err); got != tt.want {
			t.Errorf("mapDomainError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=25&bad=abc", nil)

	if got := parseIntQuery(req, "limit", 50); got != 25 {
		t.Errorf("limit = %d, want 25", got)
	}

	if got := parseIntQuery(req, "bad", 50); got != 50 {
		t.Errorf("bad = %d, want default 50", got)
	}

	if got := parseIntQuery(req, "missing", 7); got != 7 {
		t.Errorf("missing = %d, want default 7", got)
	}
}

func TestParseTimeQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?from=2026-03-01T00:00:00Z&junk=yesterday", nil)

	if got := parseTimeQuery(req, "from"); got == nil || got.Year() != 2026 {
		t.Errorf("from = %v, want march 2026", got)
	}

	if got := parseTimeQuery(req, "junk"); got != nil {
		t.Errorf("junk = %v, want nil", got)
	}

	if got := parseTimeQuery(req, "missing"); got != nil {
		t.Errorf("missing = %v, want nil", got)
	}
}
