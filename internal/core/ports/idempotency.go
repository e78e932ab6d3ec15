package ports

import "context"

// StoredResponse is a response captured for an Idempotency-Key.
type StoredResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// IdempotencyStore remembers the first successful response for a key.
type IdempotencyStore interface {
	// Lookup returns the stored response, or nil when the key is unseen.
	Lookup(ctx context.Context, key string) (*StoredResponse, error)
	// Save stores resp unless the key already holds a response.
	Save(ctx context.Context, key string, resp StoredResponse) error
}
