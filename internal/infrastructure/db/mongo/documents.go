package mongo

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inkwell/blog-api/internal/core/domain"
)

type userDoc struct {
	ID           int64     `bson:"_id"`
	Name         string    `bson:"name"`
	Phone        string    `bson:"phone"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	Status       int       `bson:"status"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

type postDoc struct {
	ID        int64     `bson:"_id"`
	Title     string    `bson:"title"`
	Summary   string    `bson:"summary"`
	Content   string    `bson:"content"`
	Status    int       `bson:"status"`
	OwnerID   int64     `bson:"owner_id"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`

	// filled by the owner $lookup on reads
	Owners []userDoc `bson:"owners,omitempty"`
}

func newUserDoc(u *domain.User) userDoc {
	return userDoc{
		ID:           u.ID,
		Name:         u.Name,
		Phone:        u.Phone,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Status:       u.Status,
		CreatedAt:    u.CreatedAt.UTC(),
		UpdatedAt:    u.UpdatedAt.UTC(),
	}
}

func (d userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID,
		Name:         d.Name,
		Phone:        d.Phone,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Status:       d.Status,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

func newPostDoc(p *domain.Post) postDoc {
	return postDoc{
		ID:        p.ID,
		Title:     p.Title,
		Summary:   p.Summary,
		Content:   p.Content,
		Status:    p.Status,
		OwnerID:   p.OwnerID,
		CreatedAt: p.CreatedAt.UTC(),
		UpdatedAt: p.UpdatedAt.UTC(),
	}
}

func (v postDoc) toDomain() *domain.Post {
	p := &domain.Post{
		ID:        v.ID,
		Title:     v.Title,
		Summary:   v.Summary,
		Content:   v.Content,
		Status:    v.Status,
		OwnerID:   v.OwnerID,
		CreatedAt: v.CreatedAt.UTC(),
		UpdatedAt: v.UpdatedAt.UTC(),
	}
	if len(v.Owners) > 0 {
		p.Owner = domain.OwnerOf(v.Owners[0].toDomain())
	}
	return p
}

// searchFilter matches documents where any field contains search literally.
func searchFilter(search string, fields ...string) bson.M {
	if search == "" {
		return bson.M{}
	}
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search)}
	or := make(bson.A, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: pattern})
	}
	return bson.M{"$or": or}
}

func userSet(p domain.UserPatch, now time.Time) bson.M {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Phone != nil {
		set["phone"] = *p.Phone
	}
	if p.Email != nil {
		set["email"] = *p.Email
	}
	if p.PasswordHash != nil {
		set["password_hash"] = *p.PasswordHash
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	if len(set) > 0 {
		set["updated_at"] = now
	}
	return set
}

func postSet(p domain.PostPatch, now time.Time) bson.M {
	set := bson.M{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Summary != nil {
		set["summary"] = *p.Summary
	}
	if p.Content != nil {
		set["content"] = *p.Content
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	if p.OwnerID != nil {
		set["owner_id"] = *p.OwnerID
	}
	if len(set) > 0 {
		set["updated_at"] = now
	}
	return set
}

var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}
