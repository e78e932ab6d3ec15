package gormdb

import (
	"time"

	"github.com/inkwell/blog-api/internal/core/domain"
)

type userModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"size:255;not null"`
	Phone     string    `gorm:"size:32"`
	Email     string    `gorm:"size:255;not null;uniqueIndex:idx_users_email"`
	Password  string    `gorm:"size:255;not null"`
	Status    int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"index:idx_users_created_at"`
	UpdatedAt time.Time
}

func (userModel) TableName() string { return "users" }

type postModel struct {
	ID        int64      `gorm:"primaryKey;autoIncrement"`
	Title     string     `gorm:"size:255;not null"`
	Summary   string     `gorm:"size:1024;not null"`
	Content   string     `gorm:"type:text;not null"`
	Status    int        `gorm:"not null;default:0"`
	OwnerID   int64      `gorm:"not null;index:idx_posts_owner"`
	Owner     *userModel `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `gorm:"index:idx_posts_created_at"`
	UpdatedAt time.Time
}

func (postModel) TableName() string { return "posts" }

func toUserModel(u *domain.User) *userModel {
	return &userModel{
		ID:        u.ID,
		Name:      u.Name,
		Phone:     u.Phone,
		Email:     u.Email,
		Password:  u.PasswordHash,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Phone:        m.Phone,
		Email:        m.Email,
		PasswordHash: m.Password,
		Status:       m.Status,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

func toPostModel(p *domain.Post) *postModel {
	return &postModel{
		ID:        p.ID,
		Title:     p.Title,
		Summary:   p.Summary,
		Content:   p.Content,
		Status:    p.Status,
		OwnerID:   p.OwnerID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *postModel) toDomain() *domain.Post {
	p := &domain.Post{
		ID:        m.ID,
		Title:     m.Title,
		Summary:   m.Summary,
		Content:   m.Content,
		Status:    m.Status,
		OwnerID:   m.OwnerID,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
	if m.Owner != nil {
		p.Owner = &domain.Owner{ID: m.Owner.ID, Name: m.Owner.Name, Email: m.Owner.Email, Phone: m.Owner.Phone}
	}
	return p
}

// userUpdates maps a patch to column assignments.
func userUpdates(p domain.UserPatch) map[string]interface{} {
	m := make(map[string]interface{})
	if p.Name != nil {
		m["name"] = *p.Name
	}
	if p.Phone != nil {
		m["phone"] = *p.Phone
	}
	if p.Email != nil {
		m["email"] = *p.Email
	}
	if p.PasswordHash != nil {
		m["password"] = *p.PasswordHash
	}
	if p.Status != nil {
		m["status"] = *p.Status
	}
	return m
}

func postUpdates(p domain.PostPatch) map[string]interface{} {
	m := make(map[string]interface{})
	if p.Title != nil {
		m["title"] = *p.Title
	}
	if p.Summary != nil {
		m["summary"] = *p.Summary
	}
	if p.Content != nil {
		m["content"] = *p.Content
	}
	if p.Status != nil {
		m["status"] = *p.Status
	}
	if p.OwnerID != nil {
		m["owner_id"] = *p.OwnerID
	}
	return m
}
