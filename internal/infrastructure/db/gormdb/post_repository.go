package gormdb

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) ports.PostRepository {
	return &postRepository{db: db}
}

func withOwner(db *gorm.DB) *gorm.DB {
	return db.Preload("Owner", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "email", "phone")
	})
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	m := toPostModel(post)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, postErr(err)
	}
	return r.FindByID(ctx, m.ID)
}

func (r *postRepository) FindByID(ctx context.Context, id int64) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m postModel
	if err := r.db.WithContext(ctx).Scopes(withOwner).First(&m, id).Error; err != nil {
		return nil, postErr(err)
	}
	return m.toDomain(), nil
}

func (r *postRepository) List(ctx context.Context, q ports.ListQuery) ([]*domain.Post, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	db := r.db.WithContext(ctx).Model(&postModel{}).Scopes(matchAny(q.Search, "title", "summary", "content"))

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []postModel
	if err := db.Scopes(page(q), withOwner).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	posts := make([]*domain.Post, 0, len(rows))
	for i := range rows {
		posts = append(posts, rows[i].toDomain())
	}
	return posts, total, nil
}

// Update applies the post patch and, when present, the owner patch in one
// transaction. The owner patch targets the post's owner after reassignment.
func (r *postRepository) Update(ctx context.Context, id int64, patch domain.PostPatch) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current postModel
		if err := tx.Select("id", "owner_id").First(&current, id).Error; err != nil {
			return postErr(err)
		}

		if fields := postUpdates(patch); len(fields) > 0 {
			if err := tx.Model(&postModel{}).Where("id = ?", id).Updates(fields).Error; err != nil {
				return postErr(err)
			}
		}

		if patch.Owner == nil {
			return nil
		}
		ownerID := current.OwnerID
		if patch.OwnerID != nil {
			ownerID = *patch.OwnerID
		}
		fields := userUpdates(*patch.Owner)
		if len(fields) == 0 {
			return nil
		}
		res := tx.Model(&userModel{}).Where("id = ?", ownerID).Updates(fields)
		if res.Error != nil {
			return userErr(res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrOwnerNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *postRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Delete(&postModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func postErr(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrPostNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.ErrOwnerNotFound
	}
	return err
}
