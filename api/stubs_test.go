package api

import (
	"context"
	"fmt"
	"sort"

	"github.com/inkwell-app/inkwell-backend/auth"
	"github.com/inkwell-app/inkwell-backend/database"
	"github.com/inkwell-app/inkwell-backend/errs"
	"github.com/inkwell-app/inkwell-backend/models"
)

// stubPostRepo is an in-memory PostRepo with the same observable contract
// as the Mongo-backed one, used to exercise handlers without a store.
type stubPostRepo struct {
	posts   []models.BlogPost
	nextSeq int64

	lastPatchID string
	lastPatch   map[string]any
}

func (s *stubPostRepo) sorted() []models.BlogPost {
	out := make([]models.BlogPost, len(s.posts))
	copy(out, s.posts)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out
}

func (s *stubPostRepo) FindAll(ctx context.Context, page database.Page) ([]models.BlogPost, error) {
	var out []models.BlogPost
	for _, p := range s.sorted() {
		if page.After > 0 && p.CreatedAt <= page.After {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *stubPostRepo) FindByPostID(ctx context.Context, id string) (*models.BlogPost, error) {
	for i := range s.posts {
		if s.posts[i].ID == id {
			p := s.posts[i]
			return &p, nil
		}
	}
	return nil, errs.NewNotFoundError("blog post not found")
}

func (s *stubPostRepo) Add(ctx context.Context, post *models.BlogPost) error {
	s.nextSeq++
	post.ID = fmt.Sprintf("post-%d", s.nextSeq)
	post.CreatedAt = 1_700_000_000_000 + s.nextSeq
	post.Comments = []models.Comment{}
	post.Likes = []models.Like{}
	s.posts = append(s.posts, *post)
	return nil
}

func (s *stubPostRepo) UpdateFields(ctx context.Context, id string, patch map[string]any) error {
	s.lastPatchID = id
	s.lastPatch = patch
	for i := range s.posts {
		if s.posts[i].ID == id {
			if title, ok := patch["title"].(string); ok {
				s.posts[i].Title = title
			}
			return nil
		}
	}
	return errs.NewNotFoundError("blog post not found")
}

func (s *stubPostRepo) FindNext(ctx context.Context, currentID string) (*models.BlogPost, error) {
	ordered := s.sorted()
	if len(ordered) == 0 {
		return nil, errs.NewNoPostsError()
	}

	var current *models.BlogPost
	for i := range ordered {
		if ordered[i].ID == currentID {
			current = &ordered[i]
			break
		}
	}
	if current != nil {
		for i := range ordered {
			if ordered[i].CreatedAt > current.CreatedAt {
				return &ordered[i], nil
			}
		}
	}
	first := ordered[0]
	return &first, nil
}

// stubProvider answers identity calls from a canned table.
type stubProvider struct {
	identity auth.Identity
	err      error

	lastEmail    string
	lastPassword string
}

func (s *stubProvider) SignUp(ctx context.Context, email, password string) (auth.Identity, error) {
	s.lastEmail, s.lastPassword = email, password
	return s.identity, s.err
}

func (s *stubProvider) SignIn(ctx context.Context, email, password string) (auth.Identity, error) {
	s.lastEmail, s.lastPassword = email, password
	return s.identity, s.err
}
