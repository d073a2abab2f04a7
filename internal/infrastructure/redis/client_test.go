package redis

import (
	"context"
	"fmt"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestNewClientConnectsAndPings(t *testing.T) {
	mr := miniredis.RunT(t)

	ctx := context.Background()

	client, err := NewClient(ctx, fmt.Sprintf("redis://%s", mr.Addr()))
	if err != nil {
		t.Fatalf("expected working client: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	if err := client.Set(ctx, "probe", "ok", 0).Err(); err != nil {
		t.Fatalf("set through new client failed: %v", err)
	}
}

func TestNewClientRejectsMalformedURL(t *testing.T) {
	if _, err := NewClient(context.Background(), "://not-a-url"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestNewClientFailsWhenServerIsDown(t *testing.T) {
	mr := miniredis.RunT(t)
	url := fmt.Sprintf("redis://%s", mr.Addr())
	mr.Close()

	if _, err := NewClient(context.Background(), url); err == nil {
		t.Fatal("expected ping failure against a closed server")
	}
}
