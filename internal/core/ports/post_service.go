package ports

import (
	"context"

	"github.com/inkwell/blog-api/internal/core/domain"
)

// CreatePostInput carries all data needed to create a post.
type CreatePostInput struct {
	Title   string
	Summary string
	Content string
	Status  int
	OwnerID int64
}

// OwnerInput holds owner fields that may be rewritten through a post update.
type OwnerInput struct {
	Name  *string
	Phone *string
	Email *string
}

// UpdatePostInput is a partial post update; nil fields are kept.
type UpdatePostInput struct {
	Title   *string
	Summary *string
	Content *string
	Status  *int
	OwnerID *int64
	Owner   *OwnerInput
}

type PostService interface {
	Create(ctx context.Context, input CreatePostInput) (*domain.Post, error)
	List(ctx context.Context, filter ListFilter) (*Page[*domain.Post], error)
	Get(ctx context.Context, id int64) (*domain.Post, error)
	Update(ctx context.Context, id int64, input UpdatePostInput) (*domain.Post, error)
	Delete(ctx context.Context, id int64) (*domain.Post, error)
}
