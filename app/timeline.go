package app

import (
	"context"

	"github.com/CrestNiraj12/bizfeed/domain"
)

// PostSource supplies the feed with posts, one page at a time.
// Implemented by infra/memory, infra/sqlite and infra/directory.
type PostSource interface {
	// FetchPage returns up to limit posts starting at offset, newest first,
	// together with the total number of posts available.
	FetchPage(ctx context.Context, offset, limit int) (domain.Page, error)

	// FetchPost returns a single post by ID, or domain.ErrPostNotFound.
	FetchPost(ctx context.Context, id string) (domain.Post, error)
}
