package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type idempotencyStoreStub struct {
	checkFn  func(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, []byte, error)
	updateFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	updates  map[string][]byte
	deleted  []string
}

func (s *idempotencyStoreStub) CheckAndSet(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, []byte, error) {
	return s.checkFn(ctx, key, value, ttl)
}

func (s *idempotencyStoreStub) Update(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, key, value, ttl)
	}
	if s.updates == nil {
		s.updates = map[string][]byte{}
	}
	s.updates[key] = value
	return nil
}

func (s *idempotencyStoreStub) Delete(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return nil
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	stored, err := json.Marshal(storedResponse{
		Status: http.StatusCreated,
		Body:   json.RawMessage(`{"id":"tx-1"}`),
	})
	if err != nil {
		t.Fatal(err)
	}

	m := NewIdempotencyMiddleware(&idempotencyStoreStub{
		checkFn: func(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, []byte, error) {
			return true, stored, nil
		},
	})

	called := false
	h := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader("{}"))
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if called {
		t.Fatal("handler should not run on replay")
	}

	if rec.Header().Get("X-Idempotency-Replay") != "true" {
		t.Fatal("expected replay header")
	}

	// The replay must carry the original status, not a default 200.
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected replayed status 201, got %d", rec.Code)
	}

	if rec.Body.String() != `{"id":"tx-1"}` {
		t.Fatalf("expected stored body, got %q", rec.Body.String())
	}
}

func TestIdempotency_StoresSuccessfulResponse(t *testing.T) {
	store := &idempotencyStoreStub{
		checkFn: func(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, []byte, error) {
			return false, nil, nil
		},
	}
	m := NewIdempotencyMiddleware(store)

	h := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"tx-2"}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader("{}"))
	req.Header.Set(IdempotencyKeyHeader, "key-2")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	var stored storedResponse
	if err := json.Unmarshal(store.updates["key-2"], &stored); err != nil {
		t.Fatalf("response not stored: %v", err)
	}
	if stored.Status != http.StatusCreated {
		t.Fatalf("expected stored status 201, got %d", stored.Status)
	}
	if string(stored.Body) != `{"id":"tx-2"}` {
		t.Fatalf("unexpected stored body: %q", stored.Body)
	}
}

func TestIdempotency_SkipsFailedResponse(t *testing.T) {
	store := &idempotencyStoreStub{
		checkFn: func(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, []byte, error) {
			return false, nil, nil
		},
	}
	m := NewIdempotencyMiddleware(store)

	h := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader("{}"))
	req.Header.Set(IdempotencyKeyHeader, "key-3")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if len(store.updates) != 0 {
		t.Fatalf("failed response should not be stored: %v", store.updates)
	}

	if len(store.deleted) != 1 || store.deleted[0] != "key-3" {
		t.Fatalf("failed request should release the key: %v", store.deleted)
	}
}

func TestIdempotency_IgnoresReadsAndMissingKey(t *testing.T) {
	m := NewIdempotencyMiddleware(&idempotencyStoreStub{
		checkFn: func(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, []byte, error) {
			t.Fatal("store should not be consulted")
			return false, nil, nil
		},
	})

	calls := 0
	h := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	getReq := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	getReq.Header.Set(IdempotencyKeyHeader, "key-4")
	h.ServeHTTP(httptest.NewRecorder(), getReq)

	postReq := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader("{}"))
	h.ServeHTTP(httptest.NewRecorder(), postReq)

	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}
