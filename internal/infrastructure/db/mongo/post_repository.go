package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

type PostRepository struct {
	db    *mongo.Database
	posts *mongo.Collection
	users *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{
		db:    db,
		posts: db.Collection(collectionPosts),
		users: db.Collection(collectionUsers),
	}
}

var _ ports.PostRepository = (*PostRepository)(nil)

var lookupOwner = bson.D{{Key: "$lookup", Value: bson.M{
	"from":         collectionUsers,
	"localField":   "owner_id",
	"foreignField": "_id",
	"as":           "owners",
}}}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, collectionPosts)
	if err != nil {
		return nil, err
	}

	doc := newPostDoc(post)
	doc.ID = id
	if _, err := r.posts.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *PostRepository) FindByID(ctx context.Context, id int64) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	views, err := r.aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": id}}},
		{{Key: "$limit", Value: 1}},
		lookupOwner,
	})
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, domain.ErrPostNotFound
	}
	return views[0].toDomain(), nil
}

func (r *PostRepository) List(ctx context.Context, q ports.ListQuery) ([]*domain.Post, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := searchFilter(q.Search, "title", "summary", "content")
	total, err := r.posts.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	views, err := r.aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: newestFirst}},
		{{Key: "$skip", Value: int64(q.Offset)}},
		{{Key: "$limit", Value: int64(q.Limit)}},
		lookupOwner,
	})
	if err != nil {
		return nil, 0, err
	}

	posts := make([]*domain.Post, 0, len(views))
	for _, v := range views {
		posts = append(posts, v.toDomain())
	}
	return posts, total, nil
}

func (r *PostRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]postDoc, error) {
	cur, err := r.posts.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate posts: %w", err)
	}
	var views []postDoc
	if err := cur.All(ctx, &views); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return views, nil
}

// Update writes the post and the optional owner patch in one transaction.
func (r *PostRepository) Update(ctx context.Context, id int64, patch domain.PostPatch) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	session, err := r.db.Client().StartSession()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	now := time.Now().UTC()
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var current postDoc
		if err := r.posts.FindOne(sc, bson.M{"_id": id}).Decode(&current); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, domain.ErrPostNotFound
			}
			return nil, fmt.Errorf("find post: %w", err)
		}

		if set := postSet(patch, now); len(set) > 0 {
			if _, err := r.posts.UpdateByID(sc, id, bson.M{"$set": set}); err != nil {
				return nil, fmt.Errorf("update post: %w", err)
			}
		}

		if patch.Owner == nil {
			return nil, nil
		}
		ownerID := current.OwnerID
		if patch.OwnerID != nil {
			ownerID = *patch.OwnerID
		}
		set := userSet(*patch.Owner, now)
		if len(set) == 0 {
			return nil, nil
		}
		res, err := r.users.UpdateByID(sc, ownerID, bson.M{"$set": set})
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, domain.ErrDuplicateEmail
			}
			return nil, fmt.Errorf("update owner: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil, domain.ErrOwnerNotFound
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.posts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}
