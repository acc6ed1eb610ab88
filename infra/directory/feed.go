package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/bizfeed/domain"
)

// FeedService implements app.PostSource using the directory API.
type FeedService struct {
	client *Client
}

// NewFeedService creates a FeedService backed by client.
func NewFeedService(client *Client) *FeedService {
	return &FeedService{client: client}
}

// apiPage is the JSON shape of GET /api/v1/feed/posts.
type apiPage struct {
	Posts  []apiPost `json:"posts"`
	Offset int       `json:"offset"`
	Total  int       `json:"total"`
}

type apiPost struct {
	ID        string       `json:"id"`
	Author    apiAuthor    `json:"author"`
	Caption   string       `json:"caption"` // HTML
	CreatedAt string       `json:"created_at"`
	Likes     int          `json:"likes"`
	ImageURL  string       `json:"image_url"`
	Comments  []apiComment `json:"comments"`
}

type apiAuthor struct {
	Name        string `json:"name"`
	AvatarURL   string `json:"avatar_url"`
	Description string `json:"description"`
}

type apiComment struct {
	ID        string    `json:"id"`
	Author    apiAuthor `json:"author"`
	Content   string    `json:"content"`
	CreatedAt string    `json:"created_at"`
}

// FetchPage returns up to limit posts starting at offset.
func (s *FeedService) FetchPage(ctx context.Context, offset, limit int) (domain.Page, error) {
	if offset < 0 || limit <= 0 {
		return domain.Page{}, fmt.Errorf("offset %d limit %d: %w", offset, limit, domain.ErrInvalidPage)
	}
	q := url.Values{}
	q.Set("offset", fmt.Sprint(offset))
	q.Set("limit", fmt.Sprint(limit))

	data, err := s.client.Get(ctx, "/api/v1/feed/posts?"+q.Encode())
	if err != nil {
		return domain.Page{}, fmt.Errorf("fetching feed: %w", err)
	}

	var page apiPage
	if err := json.Unmarshal(data, &page); err != nil {
		return domain.Page{}, fmt.Errorf("parsing feed: %w", err)
	}

	posts := make([]domain.Post, 0, len(page.Posts))
	for _, p := range page.Posts {
		posts = append(posts, mapPost(p))
	}
	total := max(page.Total, offset+len(posts))
	if page.Total == 0 && len(posts) == limit {
		// No total reported: a full page means another may follow. A short
		// or empty page ends the feed.
		total = offset + len(posts) + limit
	}
	return domain.Page{Posts: posts, Offset: offset, Total: total}, nil
}

// FetchPost returns a single post by ID.
func (s *FeedService) FetchPost(ctx context.Context, id string) (domain.Post, error) {
	data, err := s.client.Get(ctx, "/api/v1/feed/posts/"+url.PathEscape(id))
	if isStatus(err, http.StatusNotFound) {
		return domain.Post{}, fmt.Errorf("post %s: %w", id, domain.ErrPostNotFound)
	}
	if err != nil {
		return domain.Post{}, fmt.Errorf("fetching post %s: %w", id, err)
	}

	var p apiPost
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.Post{}, fmt.Errorf("parsing post: %w", err)
	}
	return mapPost(p), nil
}

func mapPost(p apiPost) domain.Post {
	comments := make([]domain.Comment, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, domain.Comment{
			ID:        sanitizeForTerminal(c.ID),
			Author:    mapAuthor(c.Author),
			Content:   sanitizeForTerminal(stripHTML(c.Content)),
			CreatedAt: parseTime(c.CreatedAt),
		})
	}
	return domain.Post{
		ID:        sanitizeForTerminal(p.ID),
		Author:    mapAuthor(p.Author),
		Caption:   sanitizeForTerminal(stripHTML(p.Caption)),
		CreatedAt: parseTime(p.CreatedAt),
		Likes:     max(p.Likes, 0),
		Comments:  comments,
		ImageURL:  sanitizeForTerminal(p.ImageURL),
	}
}

func mapAuthor(a apiAuthor) domain.Author {
	return domain.Author{
		Name:      sanitizeForTerminal(a.Name),
		AvatarURL: sanitizeForTerminal(a.AvatarURL),
		Headline:  sanitizeForTerminal(a.Description),
	}
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

// stripHTML removes HTML tags and decodes entities.
// Good enough for terminal display; not a security boundary.
var (
	htmlTagRe   = regexp.MustCompile(`<[^>]*>`)
	lineBreakRe = regexp.MustCompile(`(?i)</p>|<br\s*/?>`)
	scriptRe    = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
)

func stripHTML(s string) string {
	s = scriptRe.ReplaceAllString(s, "")
	// Paragraph ends and breaks become newlines
	s = lineBreakRe.ReplaceAllString(s, "\n")
	s = htmlTagRe.ReplaceAllString(s, "")
	return strings.TrimSpace(html.UnescapeString(s))
}

// sanitizeForTerminal drops escape sequences and control characters other
// than newlines and tabs, so remote text cannot drive the terminal.
func sanitizeForTerminal(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
