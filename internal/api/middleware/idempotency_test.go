package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inkwell/blog-api/internal/core/ports"
)

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]ports.StoredResponse
	failGet bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: make(map[string]ports.StoredResponse)}
}

func (s *memoryStore) Lookup(_ context.Context, key string) (*ports.StoredResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGet {
		return nil, errors.New("redis down")
	}
	resp, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	return &resp, nil
}

func (s *memoryStore) Save(_ context.Context, key string, resp ports.StoredResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; !ok {
		s.entries[key] = resp
	}
	return nil
}

// countingServer mounts a create route that numbers each call.
func countingServer(store ports.IdempotencyStore, status int) (*echo.Echo, *int) {
	e := echo.New()
	calls := 0
	e.POST("/posts", func(c echo.Context) error {
		calls++
		if status >= http.StatusBadRequest {
			return echo.NewHTTPError(status, "nope")
		}
		return c.JSON(status, map[string]int{"call": calls})
	}, Idempotency(store, zerolog.Nop()))
	return e, &calls
}

func post(e *echo.Echo, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if key != "" {
		req.Header.Set(HeaderIdempotencyKey, key)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	e, calls := countingServer(newMemoryStore(), http.StatusCreated)

	first := post(e, "abc")
	second := post(e, "abc")

	if *calls != 1 {
		t.Fatalf("expected handler to run once, ran %d times", *calls)
	}
	if second.Code != http.StatusCreated {
		t.Fatalf("expected replayed 201, got %d", second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("replayed body differs: %q vs %q", first.Body.String(), second.Body.String())
	}
	if second.Header().Get(HeaderReplayed) != "true" {
		t.Fatal("expected replay header")
	}
	if !strings.HasPrefix(second.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		t.Fatalf("unexpected content type %q", second.Header().Get(echo.HeaderContentType))
	}
}

func TestIdempotency_DistinctKeysAndNoKey(t *testing.T) {
	e, calls := countingServer(newMemoryStore(), http.StatusCreated)

	post(e, "a")
	post(e, "b")
	post(e, "")
	post(e, "")

	if *calls != 4 {
		t.Fatalf("expected 4 handler runs, got %d", *calls)
	}
}

func TestIdempotency_FailuresAreNotStored(t *testing.T) {
	store := newMemoryStore()
	e, calls := countingServer(store, http.StatusBadRequest)

	post(e, "abc")
	post(e, "abc")

	if *calls != 2 {
		t.Fatalf("failed responses must not be replayed, handler ran %d times", *calls)
	}
	if len(store.entries) != 0 {
		t.Fatalf("expected nothing stored, got %v", store.entries)
	}
}

func TestIdempotency_StoreErrorFallsThrough(t *testing.T) {
	store := newMemoryStore()
	store.failGet = true
	e, calls := countingServer(store, http.StatusCreated)

	rec := post(e, "abc")
	if rec.Code != http.StatusCreated || *calls != 1 {
		t.Fatalf("expected request to be served, got %d after %d calls", rec.Code, *calls)
	}
}

func TestIdempotency_NilStore(t *testing.T) {
	e, calls := countingServer(nil, http.StatusCreated)

	post(e, "abc")
	post(e, "abc")
	if *calls != 2 {
		t.Fatalf("expected pass-through without a store, got %d calls", *calls)
	}
}
