package ports

import (
	"context"

	"github.com/inkwell/blog-api/internal/core/domain"
)

// RegisterInput carries a new account. Password is plaintext.
type RegisterInput struct {
	Name     string
	Phone    string
	Email    string
	Password string
	Status   int
}

// UpdateUserInput is a partial account update; nil fields are kept.
type UpdateUserInput struct {
	Name     *string
	Phone    *string
	Email    *string
	Password *string
	Status   *int
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	List(ctx context.Context, filter ListFilter) (*Page[*domain.User], error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
