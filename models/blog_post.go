package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Comment is a reader comment attached to a post. There is no mutation
// endpoint for comments yet; the array is initialized empty at creation.
type Comment struct {
	UID       string `bson:"uid" json:"uid"`
	Text      string `bson:"text" json:"text"`
	CreatedAt int64  `bson:"createdAt" json:"createdAt"`
}

// Like records a single user's like on a post.
type Like struct {
	UID     string `bson:"uid" json:"uid"`
	LikedAt int64  `bson:"likedAt" json:"likedAt"`
}

// BlogPost is one post document. ObjectID is the store's native identifier;
// ID holds the same value denormalized into the document body so lookups can
// filter on a plain field. CreatedAt is epoch milliseconds from the server
// clock and is the sole sort and pagination key.
type BlogPost struct {
	ObjectID    primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID          string             `bson:"id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Content     string             `bson:"content" json:"content"`
	UID         string             `bson:"uid" json:"uid"`
	Author      string             `bson:"author" json:"author"`
	ImageFile   string             `bson:"imageFile" json:"imageFile"`
	Comments    []Comment          `bson:"comments" json:"comments"`
	Likes       []Like             `bson:"likes" json:"likes"`
	CreatedAt   int64              `bson:"createdAt" json:"createdAt"`
}
