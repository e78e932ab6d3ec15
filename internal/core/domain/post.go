package domain

import "time"

// Owner is the public projection of a post's author.
type Owner struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// OwnerOf projects a user onto the fields exposed alongside posts.
func OwnerOf(u *User) *Owner {
	if u == nil {
		return nil
	}
	return &Owner{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}

// Post is a piece of content written by a user.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Content   string    `json:"content"`
	Status    int       `json:"status"`
	OwnerID   int64     `json:"ownerId"`
	Owner     *Owner    `json:"owner,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostPatch carries a partial post update. Owner, when set, is written to the
// user referenced by the post (after OwnerID has been applied).
type PostPatch struct {
	Title   *string
	Summary *string
	Content *string
	Status  *int
	OwnerID *int64
	Owner   *UserPatch
}

// Apply copies every non-nil post field of the patch onto p.
func (pp PostPatch) Apply(p *Post) {
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	if pp.Summary != nil {
		p.Summary = *pp.Summary
	}
	if pp.Content != nil {
		p.Content = *pp.Content
	}
	if pp.Status != nil {
		p.Status = *pp.Status
	}
	if pp.OwnerID != nil {
		p.OwnerID = *pp.OwnerID
	}
}
