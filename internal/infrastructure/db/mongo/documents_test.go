package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inkwell/blog-api/internal/core/domain"
)

func TestSearchFilter_Empty(t *testing.T) {
	if got := searchFilter("", "name"); len(got) != 0 {
		t.Fatalf("expected empty filter, got %v", got)
	}
}

func TestSearchFilter_QuotesMetacharacters(t *testing.T) {
	got := searchFilter("a.b*", "name", "email")
	or, ok := got["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("expected two $or branches, got %v", got)
	}
	branch := or[1].(bson.M)
	re, ok := branch["email"].(primitive.Regex)
	if !ok {
		t.Fatalf("expected regex on email, got %v", branch)
	}
	if re.Pattern != `a\.b\*` {
		t.Fatalf("expected quoted pattern, got %q", re.Pattern)
	}
}

func TestUserSet_OnlyProvidedFields(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	name := "Ada"
	set := userSet(domain.UserPatch{Name: &name}, now)
	if len(set) != 2 || set["name"] != "Ada" || set["updated_at"] != now {
		t.Fatalf("unexpected set: %v", set)
	}
	if len(userSet(domain.UserPatch{}, now)) != 0 {
		t.Fatal("expected empty set for empty patch")
	}
}

func TestPostSet_Reassign(t *testing.T) {
	now := time.Now().UTC()
	owner := int64(7)
	set := postSet(domain.PostPatch{OwnerID: &owner}, now)
	if set["owner_id"] != int64(7) {
		t.Fatalf("expected owner_id 7, got %v", set["owner_id"])
	}
}

func TestPostDoc_ProjectsOwner(t *testing.T) {
	v := postDoc{
		ID:      3,
		Title:   "t",
		OwnerID: 9,
		Owners:  []userDoc{{ID: 9, Name: "Ada", Email: "ada@example.com", Phone: "555-123-4567", PasswordHash: "x"}},
	}
	p := v.toDomain()
	if p.Owner == nil || p.Owner.ID != 9 || p.Owner.Name != "Ada" {
		t.Fatalf("unexpected owner: %+v", p.Owner)
	}

	v.Owners = nil
	if v.toDomain().Owner != nil {
		t.Fatal("expected nil owner without a match")
	}
}
