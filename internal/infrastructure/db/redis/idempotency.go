package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inkwell/blog-api/internal/core/ports"
)

const DefaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore remembers the response produced for an Idempotency-Key.
// Key format: idem:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore wraps client; a non-positive ttl falls back to
// DefaultIdempotencyTTL.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// Lookup returns the stored response for key, or nil when none exists.
func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (*ports.StoredResponse, error) {
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("idempotency lookup: %w", err)
	}

	var resp ports.StoredResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("idempotency decode: %w", err)
	}
	return &resp, nil
}

// Save records resp under key unless a response is already stored.
func (s *IdempotencyStore) Save(ctx context.Context, key string, resp ports.StoredResponse) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("idempotency encode: %w", err)
	}
	if err := s.client.SetNX(ctx, s.key(key), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency save: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(key string) string {
	return "idem:" + key
}
