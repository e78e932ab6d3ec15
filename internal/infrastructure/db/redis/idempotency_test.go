package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/inkwell/blog-api/internal/core/ports"
)

func newTestStore(t *testing.T, ttl time.Duration) (*IdempotencyStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewIdempotencyStore(client, ttl), mr
}

func TestIdempotencyStore_LookupMissing(t *testing.T) {
	store, _ := newTestStore(t, time.Minute)

	resp, err := store.Lookup(context.Background(), "POST /posts abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != nil {
		t.Fatalf("expected nil response, got %+v", resp)
	}
}

func TestIdempotencyStore_SaveThenLookup(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, time.Minute)

	want := ports.StoredResponse{Status: 201, ContentType: "application/json", Body: []byte(`{"id":1}`)}
	if err := store.Save(ctx, "k1", want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Lookup(ctx, "k1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got == nil || got.Status != 201 || got.ContentType != want.ContentType || string(got.Body) != `{"id":1}` {
		t.Fatalf("unexpected response: %+v", got)
	}
}

func TestIdempotencyStore_FirstSaveWins(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, time.Minute)

	_ = store.Save(ctx, "k1", ports.StoredResponse{Status: 201, Body: []byte("first")})
	_ = store.Save(ctx, "k1", ports.StoredResponse{Status: 201, Body: []byte("second")})

	got, _ := store.Lookup(ctx, "k1")
	if got == nil || string(got.Body) != "first" {
		t.Fatalf("expected first response to be kept, got %+v", got)
	}
}

func TestIdempotencyStore_Expires(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, time.Minute)

	_ = store.Save(ctx, "k1", ports.StoredResponse{Status: 201})
	if ttl := mr.TTL("idem:k1"); ttl != time.Minute {
		t.Fatalf("expected 1m ttl, got %s", ttl)
	}

	mr.FastForward(2 * time.Minute)
	got, err := store.Lookup(ctx, "k1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got != nil {
		t.Fatalf("expected expired entry, got %+v", got)
	}
}

func TestNewIdempotencyStore_DefaultTTL(t *testing.T) {
	store, _ := newTestStore(t, 0)
	if store.ttl != DefaultIdempotencyTTL {
		t.Fatalf("expected default ttl, got %s", store.ttl)
	}
}
