package gormdb

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) ports.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	m := toUserModel(user)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, userErr(err)
	}
	return m.toDomain(), nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m userModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, userErr(err)
	}
	return m.toDomain(), nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m userModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, userErr(err)
	}
	return m.toDomain(), nil
}

func (r *userRepository) List(ctx context.Context, q ports.ListQuery) ([]*domain.User, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	db := r.db.WithContext(ctx).Model(&userModel{}).Scopes(matchAny(q.Search, "name", "email"))

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []userModel
	if err := db.Scopes(page(q)).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	users := make([]*domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, rows[i].toDomain())
	}
	return users, total, nil
}

func (r *userRepository) Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if fields := userUpdates(patch); len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, userErr(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, domain.ErrUserNotFound
		}
	}
	return r.FindByID(ctx, id)
}

// Delete removes the user together with every post they own.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", id).Delete(&postModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&userModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrUserNotFound
		}
		return nil
	})
}

func userErr(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrUserNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrDuplicateEmail
	}
	return err
}
