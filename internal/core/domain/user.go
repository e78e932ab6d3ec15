package domain

import "time"

// User models a registered account. PasswordHash never leaves the service layer.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Status       int       `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserPatch carries a partial update. Nil fields are left untouched.
type UserPatch struct {
	Name         *string
	Phone        *string
	Email        *string
	PasswordHash *string
	Status       *int
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Phone == nil && p.Email == nil && p.PasswordHash == nil && p.Status == nil
}

// Apply copies every non-nil field of the patch onto u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
}
