package ports

import (
	"context"

	"github.com/inkwell/blog-api/internal/core/domain"
)

// UserRepository is the record store for user accounts.
//
// Implementations translate a unique-index violation on email into
// domain.ErrDuplicateEmail and a missing row into domain.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns one page of users whose name or email contains q.Search,
	// newest first, together with the total number of matches.
	List(ctx context.Context, q ListQuery) ([]*domain.User, int64, error)
	Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error)
	// Delete removes the user and the posts it owns.
	Delete(ctx context.Context, id int64) error
}
