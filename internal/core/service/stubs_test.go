package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	nextID int64
	users  map[int64]*domain.User
	clock  time.Time

	createErr error // if set, Create returns this error
	findErr   error // if set, FindByEmail returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users: make(map[int64]*domain.User),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.nextID++
	// each insert is one second newer than the previous one
	r.clock = r.clock.Add(time.Second)
	stored := cloneUser(user)
	stored.ID = r.nextID
	stored.CreatedAt = r.clock
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, q ports.ListQuery) ([]*domain.User, int64, error) {
	var matched []*domain.User
	for _, u := range r.users {
		if q.Search != "" && !strings.Contains(u.Name, q.Search) && !strings.Contains(u.Email, q.Search) {
			continue
		}
		matched = append(matched, cloneUser(u))
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	return paginate(matched, q), int64(len(matched)), nil
}

func (r *stubUserRepo) Update(_ context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.Email != nil {
		for _, other := range r.users {
			if other.ID != id && other.Email == *patch.Email {
				return nil, domain.ErrDuplicateEmail
			}
		}
	}
	patch.Apply(u)
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubPostRepo struct {
	nextID int64
	posts  map[int64]*domain.Post
	users  *stubUserRepo
}

func newStubPostRepo(users *stubUserRepo) *stubPostRepo {
	return &stubPostRepo{posts: make(map[int64]*domain.Post), users: users}
}

func (r *stubPostRepo) withOwner(p *domain.Post) *domain.Post {
	clone := *p
	if u, ok := r.users.users[p.OwnerID]; ok {
		clone.Owner = domain.OwnerOf(u)
	}
	return &clone
}

func (r *stubPostRepo) Create(_ context.Context, post *domain.Post) (*domain.Post, error) {
	if _, ok := r.users.users[post.OwnerID]; !ok {
		return nil, domain.ErrOwnerNotFound
	}
	r.nextID++
	stored := *post
	stored.ID = r.nextID
	stored.CreatedAt = post.CreatedAt.Add(time.Duration(r.nextID) * time.Second)
	r.posts[stored.ID] = &stored
	return r.withOwner(&stored), nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id int64) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return r.withOwner(p), nil
}

func (r *stubPostRepo) List(_ context.Context, q ports.ListQuery) ([]*domain.Post, int64, error) {
	var matched []*domain.Post
	for _, p := range r.posts {
		if q.Search != "" &&
			!strings.Contains(p.Title, q.Search) &&
			!strings.Contains(p.Summary, q.Search) &&
			!strings.Contains(p.Content, q.Search) {
			continue
		}
		matched = append(matched, r.withOwner(p))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	return paginate(matched, q), int64(len(matched)), nil
}

func (r *stubPostRepo) Update(ctx context.Context, id int64, patch domain.PostPatch) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	patch.Apply(p)
	if patch.Owner != nil {
		if _, err := r.users.Update(ctx, p.OwnerID, *patch.Owner); err != nil {
			return nil, err
		}
	}
	return r.withOwner(p), nil
}

func (r *stubPostRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func paginate[T any](items []T, q ports.ListQuery) []T {
	if q.Offset >= len(items) {
		return []T{}
	}
	end := q.Offset + q.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[q.Offset:end]
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func ptr[T any](v T) *T { return &v }
