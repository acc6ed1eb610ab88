// Package memory serves a fixed post catalogue from memory.
package memory

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/CrestNiraj12/bizfeed/domain"
)

// Source implements app.PostSource over an in-memory slice.
type Source struct {
	posts []domain.Post
}

// New creates a Source serving posts in the given order.
func New(posts []domain.Post) *Source {
	return &Source{posts: clonePosts(posts)}
}

// NewSample creates a Source with n generated sample posts.
func NewSample(n int, now time.Time) *Source {
	return &Source{posts: domain.SamplePosts(n, now)}
}

// FetchPage returns up to limit posts starting at offset.
func (s *Source) FetchPage(ctx context.Context, offset, limit int) (domain.Page, error) {
	if err := ctx.Err(); err != nil {
		return domain.Page{}, err
	}
	if offset < 0 || limit <= 0 {
		return domain.Page{}, fmt.Errorf("offset %d limit %d: %w", offset, limit, domain.ErrInvalidPage)
	}
	total := len(s.posts)
	start := min(offset, total)
	end := min(start+limit, total)
	return domain.Page{
		Posts:  clonePosts(s.posts[start:end]),
		Offset: offset,
		Total:  total,
	}, nil
}

// FetchPost returns the post with id.
func (s *Source) FetchPost(ctx context.Context, id string) (domain.Post, error) {
	if err := ctx.Err(); err != nil {
		return domain.Post{}, err
	}
	for _, p := range s.posts {
		if p.ID == id {
			return clonePost(p), nil
		}
	}
	return domain.Post{}, fmt.Errorf("post %s: %w", id, domain.ErrPostNotFound)
}

// Len returns the catalogue size.
func (s *Source) Len() int {
	return len(s.posts)
}

func clonePosts(in []domain.Post) []domain.Post {
	out := make([]domain.Post, len(in))
	for i, p := range in {
		out[i] = clonePost(p)
	}
	return out
}

func clonePost(p domain.Post) domain.Post {
	p.Comments = slices.Clone(p.Comments)
	return p
}
