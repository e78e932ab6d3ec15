package ports

import (
	"time"

	"github.com/inkwell/blog-api/internal/core/domain"
)

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenIssuer signs and verifies the access/refresh token pair.
type TokenIssuer interface {
	Issue(claims domain.Claims, secret []byte, ttl time.Duration) (string, error)
	IssuePair(claims domain.Claims) (domain.TokenPair, error)
	ParseAccess(token string) (domain.Claims, error)
	ParseRefresh(token string) (domain.Claims, error)
}
