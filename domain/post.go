package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// CommentCharLimit is the maximum length of a comment, in characters.
const CommentCharLimit = 500

// Author holds the display fields shown next to posts and comments.
type Author struct {
	Name      string
	AvatarURL string
	Headline  string // e.g. "Owner at Harbor Street Bakery"
}

// Comment is a reply attached to exactly one Post.
type Comment struct {
	ID        string
	Author    Author
	Content   string
	CreatedAt time.Time
}

// Post is a single business update in the feed.
type Post struct {
	ID        string
	Author    Author
	Caption   string
	CreatedAt time.Time
	Likes     int
	Comments  []Comment
	ImageURL  string // Optional
}

// HasImage reports whether the post carries an image reference.
func (p Post) HasImage() bool {
	return strings.TrimSpace(p.ImageURL) != ""
}

// Page is one chunk of a paged post collection.
type Page struct {
	Posts  []Post
	Offset int
	Total  int // Number of posts the source can supply overall
}

// HasMore reports whether posts exist beyond this page.
func (p Page) HasMore() bool {
	return p.Offset+len(p.Posts) < p.Total
}

// LocalAuthor is the author used for comments written in this session.
var LocalAuthor = Author{
	Name:     "You",
	Headline: "Your current position",
}

// NewComment builds a locally authored comment. Surrounding whitespace is
// trimmed; blank content is rejected.
func NewComment(content string, now time.Time) (Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Comment{}, ErrEmptyComment
	}
	if utf8.RuneCountInString(content) > CommentCharLimit {
		return Comment{}, ErrCommentTooLong
	}
	return Comment{
		ID:        uuid.NewString(),
		Author:    LocalAuthor,
		Content:   content,
		CreatedAt: now,
	}, nil
}
