package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

type PostService struct {
	posts  ports.PostRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewPostService(posts ports.PostRepository, users ports.UserRepository, logger zerolog.Logger) *PostService {
	return &PostService{posts: posts, users: users, logger: logger}
}

func (s *PostService) Create(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error) {
	if err := s.ensureOwner(ctx, input.OwnerID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.posts.Create(ctx, &domain.Post{
		Title:     input.Title,
		Summary:   input.Summary,
		Content:   input.Content,
		Status:    input.Status,
		OwnerID:   input.OwnerID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, storeErr("create post", err, domain.ErrOwnerNotFound)
	}

	s.logger.Info().Int64("post_id", created.ID).Int64("owner_id", created.OwnerID).Msg("post created")
	return created, nil
}

func (s *PostService) List(ctx context.Context, filter ports.ListFilter) (*ports.Page[*domain.Post], error) {
	q, page, perPage := normalizeFilter(filter)
	posts, total, err := s.posts.List(ctx, q)
	if err != nil {
		return nil, storeErr("list posts", err)
	}
	return newPage(posts, total, page, perPage), nil
}

func (s *PostService) Get(ctx context.Context, id int64) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("find post", err, domain.ErrPostNotFound)
	}
	return post, nil
}

// Update rewrites the post and, when input.Owner is set, the linked user.
// The owner written to is the new OwnerID when one is supplied.
func (s *PostService) Update(ctx context.Context, id int64, input ports.UpdatePostInput) (*domain.Post, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ownerID := existing.OwnerID
	if input.OwnerID != nil {
		ownerID = *input.OwnerID
		if err := s.ensureOwner(ctx, ownerID); err != nil {
			return nil, err
		}
	}

	patch := domain.PostPatch{
		Title:   input.Title,
		Summary: input.Summary,
		Content: input.Content,
		Status:  input.Status,
		OwnerID: input.OwnerID,
	}
	if input.Owner != nil {
		ownerPatch := domain.UserPatch{
			Name:  input.Owner.Name,
			Phone: input.Owner.Phone,
			Email: input.Owner.Email,
		}
		if ownerPatch.Email != nil {
			if err := checkEmailFree(ctx, s.users, *ownerPatch.Email, ownerID); err != nil {
				return nil, err
			}
		}
		if !ownerPatch.Empty() {
			patch.Owner = &ownerPatch
		}
	}

	updated, err := s.posts.Update(ctx, id, patch)
	if err != nil {
		return nil, storeErr("update post", err, domain.ErrPostNotFound, domain.ErrOwnerNotFound, domain.ErrDuplicateEmail)
	}

	s.logger.Info().Int64("post_id", id).Bool("owner_updated", patch.Owner != nil).Msg("post updated")
	return updated, nil
}

// Delete removes the post and returns it as it was before deletion.
func (s *PostService) Delete(ctx context.Context, id int64) (*domain.Post, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return nil, storeErr("delete post", err, domain.ErrPostNotFound)
	}

	s.logger.Info().Int64("post_id", id).Msg("post deleted")
	return existing, nil
}

func (s *PostService) ensureOwner(ctx context.Context, ownerID int64) error {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrOwnerNotFound
		}
		return storeErr("find owner", err)
	}
	return nil
}
