package stacktobasics

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/zinbo/stacktobasics/content"
	"github.com/zinbo/stacktobasics/tags"
)

// Store wraps a SQLite database holding the indexed posts. It is the data
// layer both the builder and the preview server read from.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the preview server read while an index run writes.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    tags TEXT NOT NULL,
    tag_ids TEXT NOT NULL,
    excerpt TEXT NOT NULL,
    reading_time INTEGER NOT NULL DEFAULT 0,
    content TEXT NOT NULL,
    published INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS posts_date ON posts(date DESC);
`)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(`ALTER TABLE posts ADD COLUMN cover TEXT NOT NULL DEFAULT '';`); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate column") {
			return nil
		}
		return err
	}
	return nil
}

const postColumns = `slug, title, date, tags, excerpt, reading_time, cover, content, published`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(r rowScanner) (content.Post, error) {
	var slug, title, date, rawTags, excerpt, cover, html string
	var minutes, published int
	if err := r.Scan(&slug, &title, &date, &rawTags, &excerpt, &minutes, &cover, &html, &published); err != nil {
		return content.Post{}, err
	}
	return content.Post{
		Slug:        slug,
		Title:       title,
		Date:        date,
		Tags:        ParseTags(rawTags),
		Excerpt:     excerpt,
		ReadingTime: minutes,
		Cover:       cover,
		Content:     html,
		Link:        content.PostPath(slug),
		Published:   published == 1,
	}, nil
}

func (s *Store) queryPosts(ctx context.Context, query string, args ...any) ([]content.Post, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []content.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListPosts returns all published posts, newest first with ties broken by
// slug. If tag is non-empty, results are filtered to posts carrying a tag
// with the same canonical id.
func (s *Store) ListPosts(tag string) ([]content.Post, error) {
	ctx := context.Background()
	if tag == "" {
		return s.queryPosts(ctx, `SELECT `+postColumns+` FROM posts WHERE published = 1 ORDER BY date DESC, slug ASC`)
	}
	id := tags.KebabCase(tag)
	return s.queryPosts(ctx, `SELECT `+postColumns+` FROM posts WHERE published = 1 AND instr(tag_ids, ',' || ? || ',') > 0 ORDER BY date DESC, slug ASC`, id)
}

// ListAllPosts returns every post (published and drafts) in listing order.
func (s *Store) ListAllPosts() ([]content.Post, error) {
	return s.queryPosts(context.Background(), `SELECT `+postColumns+` FROM posts ORDER BY date DESC, slug ASC`)
}

// ListTags returns the sorted, deduplicated canonical ids of all tags on
// published posts.
func (s *Store) ListTags() ([]string, error) {
	rows, err := s.db.Query(`SELECT tag_ids FROM posts WHERE published = 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[string]struct{})
	for rows.Next() {
		var ids string
		if err := rows.Scan(&ids); err != nil {
			return nil, err
		}
		for _, id := range ParseTags(ids) {
			set[id] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sortedKeys(set), nil
}

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = sql.ErrNoRows

// GetPostAny returns a post by slug regardless of published status.
func (s *Store) GetPostAny(slug string) (content.Post, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug))
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func savePost(ctx context.Context, db execer, p content.Post) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %s: %v", content.ErrInvalidPost, p.Slug, err)
	}
	raw := make([]string, 0, len(p.Tags))
	ids := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		t = strings.TrimSpace(strings.ReplaceAll(t, ",", " "))
		id := tags.KebabCase(t)
		if id == "" {
			continue
		}
		raw = append(raw, t)
		ids = append(ids, id)
	}
	published := 0
	if p.Published {
		published = 1
	}
	_, err := db.ExecContext(ctx, `INSERT OR REPLACE INTO posts (`+postColumns+`, tag_ids) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Title, p.Date, joinTags(raw), p.Excerpt, p.ReadingTime, p.Cover, p.Content, published, joinTags(ids))
	return err
}

// Reindex replaces the whole index with posts in one transaction, so readers
// never see a half-written content set. Raw tags are kept for display and
// their canonical ids are indexed for filtering; tags with no canonical id
// are dropped.
func (s *Store) Reindex(ctx context.Context, posts []content.Post) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM posts`); err != nil {
		return err
	}
	for _, p := range posts {
		if err := savePost(ctx, tx, p); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func joinTags(ts []string) string {
	if len(ts) == 0 {
		return ""
	}
	return "," + strings.Join(ts, ",") + ","
}
