package database

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inkwell-app/inkwell-backend/models"
)

// Page bounds a listing call. After is an exclusive createdAt cursor (epoch
// millis); the zero value starts from the beginning. Limit is clamped to
// MaxPageSize; zero means DefaultPageSize.
type Page struct {
	After int64
	Limit int64
}

const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// PostRepo is the post storage contract. Handlers depend on this interface
// so tests can substitute an in-memory store for the Mongo-backed one.
type PostRepo interface {
	// FindAll returns posts ordered by createdAt ascending, bounded by page.
	FindAll(ctx context.Context, page Page) ([]models.BlogPost, error)
	// FindByPostID matches the denormalized id field, not the native _id.
	FindByPostID(ctx context.Context, id string) (*models.BlogPost, error)
	// Add generates the identifiers and creation timestamp, initializes the
	// comment and like arrays, and persists the document in place.
	Add(ctx context.Context, post *models.BlogPost) error
	// UpdateFields overwrites the given fields on the document matched by
	// native identifier. Callers filter the patch through FilterPatch first.
	UpdateFields(ctx context.Context, id string, patch map[string]any) error
	// FindNext returns the immediate successor of the given post in
	// createdAt order, wrapping around to the earliest post after the last.
	FindNext(ctx context.Context, currentID string) (*models.BlogPost, error)
}

// allowedPatchFields is the update whitelist: identity and timestamp fields
// are server-assigned and must not be client-writable.
var allowedPatchFields = map[string]bool{
	"title":       true,
	"description": true,
	"content":     true,
	"imageFile":   true,
}

// FilterPatch drops every field a client may not overwrite and returns the
// effective patch.
func FilterPatch(patch map[string]any) map[string]any {
	filtered := make(map[string]any, len(patch))
	for field, value := range patch {
		if allowedPatchFields[field] {
			filtered[field] = value
		}
	}
	return filtered
}

func pageLimit(page Page) int64 {
	switch {
	case page.Limit <= 0:
		return DefaultPageSize
	case page.Limit > MaxPageSize:
		return MaxPageSize
	default:
		return page.Limit
	}
}

// Database aggregates the repositories behind one handle that is built once
// at startup and passed explicitly to the server.
type Database struct {
	postRepo PostRepo
}

// New wires every repository to a shared Mongo database handle.
func New(db *mongo.Database) Database {
	return Database{postRepo: NewBlogPostRepo(db)}
}

func (d Database) PostRepo() PostRepo {
	return d.postRepo
}
