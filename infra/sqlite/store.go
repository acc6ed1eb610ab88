// Package sqlite stores the post catalogue in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/CrestNiraj12/bizfeed/domain"
)

// Store implements app.PostSource over SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating %s: %w", path, err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	PRAGMA foreign_keys = ON;

	CREATE TABLE IF NOT EXISTS posts (
		id TEXT PRIMARY KEY,
		author_name TEXT NOT NULL,
		author_avatar TEXT NOT NULL DEFAULT '',
		author_headline TEXT NOT NULL DEFAULT '',
		caption TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		likes INTEGER NOT NULL DEFAULT 0,
		image_url TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS comments (
		id TEXT PRIMARY KEY,
		post_id TEXT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		author_name TEXT NOT NULL,
		author_avatar TEXT NOT NULL DEFAULT '',
		author_headline TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at DESC, id);
	CREATE INDEX IF NOT EXISTS idx_comments_post ON comments(post_id, position);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Seed inserts or updates posts and their comments in one transaction.
func (s *Store) Seed(ctx context.Context, posts []domain.Post) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	for _, p := range posts {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO posts (id, author_name, author_avatar, author_headline,
				caption, created_at, likes, image_url)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				author_name = excluded.author_name,
				author_avatar = excluded.author_avatar,
				author_headline = excluded.author_headline,
				caption = excluded.caption,
				created_at = excluded.created_at,
				likes = excluded.likes,
				image_url = excluded.image_url
		`, p.ID, p.Author.Name, p.Author.AvatarURL, p.Author.Headline,
			p.Caption, p.CreatedAt.UnixMilli(), p.Likes, p.ImageURL)
		if err != nil {
			return fmt.Errorf("saving post %s: %w", p.ID, err)
		}
		for i, c := range p.Comments {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO comments (id, post_id, position, author_name,
					author_avatar, author_headline, content, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET
					position = excluded.position,
					content = excluded.content
			`, c.ID, p.ID, i, c.Author.Name, c.Author.AvatarURL, c.Author.Headline,
				c.Content, c.CreatedAt.UnixMilli())
			if err != nil {
				return fmt.Errorf("saving comment %s: %w", c.ID, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

// Count returns the number of stored posts.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting posts: %w", err)
	}
	return n, nil
}

// FetchPage returns up to limit posts starting at offset, newest first.
func (s *Store) FetchPage(ctx context.Context, offset, limit int) (domain.Page, error) {
	if offset < 0 || limit <= 0 {
		return domain.Page{}, fmt.Errorf("offset %d limit %d: %w", offset, limit, domain.ErrInvalidPage)
	}
	total, err := s.Count(ctx)
	if err != nil {
		return domain.Page{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, author_name, author_avatar, author_headline,
			caption, created_at, likes, image_url
		FROM posts
		ORDER BY created_at DESC, id ASC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return domain.Page{}, fmt.Errorf("querying page: %w", err)
	}
	posts, err := scanPosts(rows)
	if err != nil {
		return domain.Page{}, err
	}
	for i := range posts {
		comments, err := s.comments(ctx, posts[i].ID)
		if err != nil {
			return domain.Page{}, err
		}
		posts[i].Comments = comments
	}
	return domain.Page{Posts: posts, Offset: offset, Total: total}, nil
}

// FetchPost returns the post with id and its comments.
func (s *Store) FetchPost(ctx context.Context, id string) (domain.Post, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, author_name, author_avatar, author_headline,
			caption, created_at, likes, image_url
		FROM posts WHERE id = ?
	`, id)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Post{}, fmt.Errorf("post %s: %w", id, domain.ErrPostNotFound)
	}
	if err != nil {
		return domain.Post{}, fmt.Errorf("querying post %s: %w", id, err)
	}
	if p.Comments, err = s.comments(ctx, id); err != nil {
		return domain.Post{}, err
	}
	return p, nil
}

func (s *Store) comments(ctx context.Context, postID string) ([]domain.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, author_name, author_avatar, author_headline, content, created_at
		FROM comments WHERE post_id = ?
		ORDER BY position ASC
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("querying comments of %s: %w", postID, err)
	}
	defer rows.Close()

	var out []domain.Comment
	for rows.Next() {
		var c domain.Comment
		var created int64
		if err := rows.Scan(&c.ID, &c.Author.Name, &c.Author.AvatarURL, &c.Author.Headline, &c.Content, &created); err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		c.CreatedAt = time.UnixMilli(created)
		out = append(out, c)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (domain.Post, error) {
	var p domain.Post
	var created int64
	err := row.Scan(&p.ID, &p.Author.Name, &p.Author.AvatarURL, &p.Author.Headline,
		&p.Caption, &created, &p.Likes, &p.ImageURL)
	if err != nil {
		return domain.Post{}, err
	}
	p.CreatedAt = time.UnixMilli(created)
	return p, nil
}

func scanPosts(rows *sql.Rows) ([]domain.Post, error) {
	defer rows.Close()
	var posts []domain.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
