package ports

import (
	"context"

	"github.com/inkwell/blog-api/internal/core/domain"
)

// PostRepository is the record store for posts. Reads populate Post.Owner.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id int64) (*domain.Post, error)
	// List matches q.Search against title, summary and content.
	List(ctx context.Context, q ListQuery) ([]*domain.Post, int64, error)
	// Update applies the post fields of patch and, when patch.Owner is set,
	// the owner fields to the referenced user as one logical write.
	Update(ctx context.Context, id int64, patch domain.PostPatch) (*domain.Post, error)
	Delete(ctx context.Context, id int64) error
}
