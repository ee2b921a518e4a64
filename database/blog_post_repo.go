package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkwell-app/inkwell-backend/errs"
	"github.com/inkwell-app/inkwell-backend/models"
)

const postsCollection = "blogPosts"

var createdAtAsc = bson.D{{Key: "createdAt", Value: 1}}

// BlogPostRepo stores posts in a Mongo collection. It satisfies PostRepo.
type BlogPostRepo struct {
	coll *mongo.Collection
}

func NewBlogPostRepo(db *mongo.Database) *BlogPostRepo {
	return &BlogPostRepo{coll: db.Collection(postsCollection)}
}

func (r *BlogPostRepo) FindAll(ctx context.Context, page Page) ([]models.BlogPost, error) {
	filter := bson.M{}
	if page.After > 0 {
		filter["createdAt"] = bson.M{"$gt": page.After}
	}

	opts := options.Find().SetSort(createdAtAsc).SetLimit(pageLimit(page))
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errs.NewStoreError("list blog posts", err)
	}

	var posts []models.BlogPost
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, errs.NewStoreError("decode blog posts", err)
	}
	return posts, nil
}

func (r *BlogPostRepo) FindByPostID(ctx context.Context, id string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NewNotFoundError("blog post not found")
	}
	if err != nil {
		return nil, errs.NewStoreError("fetch blog post", err)
	}
	return &post, nil
}

func (r *BlogPostRepo) Add(ctx context.Context, post *models.BlogPost) error {
	oid := primitive.NewObjectID()
	post.ObjectID = oid
	post.ID = oid.Hex()
	post.CreatedAt = time.Now().UnixMilli()
	post.Comments = []models.Comment{}
	post.Likes = []models.Like{}

	if _, err := r.coll.InsertOne(ctx, post); err != nil {
		return errs.NewStoreError("create blog post", err)
	}
	return nil
}

func (r *BlogPostRepo) UpdateFields(ctx context.Context, id string, patch map[string]any) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.NewBadRequestError("invalid post id")
	}

	set := bson.M{}
	for field, value := range FilterPatch(patch) {
		set[field] = value
	}
	if len(set) == 0 {
		return errs.NewBadRequestError("no updatable fields in request")
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return errs.NewStoreError("update blog post", err)
	}
	if res.MatchedCount == 0 {
		return errs.NewNotFoundError("blog post not found")
	}
	return nil
}

// FindNext implements cyclic traversal over the ascending createdAt order:
// the successor of the latest post is the earliest one. The two queries are
// not atomic; a post inserted between them can make the result stale, which
// the store contract accepts (no multi-document transactions).
func (r *BlogPostRepo) FindNext(ctx context.Context, currentID string) (*models.BlogPost, error) {
	one := options.FindOne().SetSort(createdAtAsc)

	var current models.BlogPost
	currentFound := true
	if oid, err := primitive.ObjectIDFromHex(currentID); err != nil {
		return nil, errs.NewBadRequestError("invalid post id")
	} else if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&current); errors.Is(err, mongo.ErrNoDocuments) {
		// The current post was deleted out from under the reader; fall
		// through to the wraparound query.
		currentFound = false
	} else if err != nil {
		return nil, errs.NewStoreError("fetch current blog post", err)
	}

	if currentFound {
		var next models.BlogPost
		err := r.coll.FindOne(ctx, bson.M{"createdAt": bson.M{"$gt": current.CreatedAt}}, one).Decode(&next)
		if err == nil {
			return &next, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NewStoreError("fetch next blog post", err)
		}
	}

	var first models.BlogPost
	err := r.coll.FindOne(ctx, bson.M{}, one).Decode(&first)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NewNoPostsError()
	}
	if err != nil {
		return nil, errs.NewStoreError("fetch first blog post", err)
	}
	return &first, nil
}
