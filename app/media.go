package app

import "context"

// ImageLoader renders a remote image as a block of terminal cells.
type ImageLoader interface {
	// Load fetches url and returns a preview w cells wide and h lines tall.
	Load(ctx context.Context, url string, w, h int) (string, error)

	// Placeholder returns the fixed picture shown when Load fails.
	Placeholder(w, h int) string
}
