package redis

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestIdempotencyStore_CheckAndSetNewKey(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	exists, existing, err := store.CheckAndSet(ctx, "req-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("check and set failed: %v", err)
	}
	if exists {
		t.Fatal("expected new key")
	}
	if existing != nil {
		t.Fatalf("expected no existing value, got %s", existing)
	}
}

func TestIdempotencyStore_CheckAndSetExistingKey(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if _, _, err := store.CheckAndSet(ctx, "req-1", []byte("response"), time.Minute); err != nil {
		t.Fatalf("first call failed: %v", err)
	}

	exists, existing, err := store.CheckAndSet(ctx, "req-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if !exists {
		t.Fatal("expected existing key")
	}
	if !bytes.Equal(existing, []byte("response")) {
		t.Fatalf("expected cached response, got %s", existing)
	}
}

func TestIdempotencyStore_Update(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if err := store.Update(ctx, "complete", []byte("done"), time.Minute); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	val, err := client.Get(ctx, idempotencyPrefix+"complete").Result()
	if err != nil || val != "done" {
		t.Fatalf("expected stored response, got val=%s err=%v", val, err)
	}
}

func TestIdempotencyStore_DeleteReleasesKey(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if _, _, err := store.CheckAndSet(ctx, "req-1", nil, time.Minute); err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	if err := store.Delete(ctx, "req-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	exists, _, err := store.CheckAndSet(ctx, "req-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("reclaim failed: %v", err)
	}
	if exists {
		t.Fatal("expected released key to be claimable again")
	}
}
