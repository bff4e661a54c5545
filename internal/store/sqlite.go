package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS blogs (
			id TEXT PRIMARY KEY,
			prompt TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			error_message TEXT NOT NULL DEFAULT '',
			author TEXT NOT NULL DEFAULT '',
			author_id TEXT NOT NULL DEFAULT '',
			published_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_blogs_status ON blogs(status)`,
		`CREATE TABLE IF NOT EXISTS revisions (
			id TEXT PRIMARY KEY,
			blog_id TEXT NOT NULL,
			user_id TEXT NOT NULL DEFAULT '',
			what TEXT NOT NULL,
			how TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			FOREIGN KEY(blog_id) REFERENCES blogs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_revisions_blog ON revisions(blog_id)`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) InsertBlog(ctx context.Context, b *Blog) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO blogs (id, prompt, content, status, error_message, author, author_id, published_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Prompt, b.Content, string(b.Status), b.ErrorMessage, b.Author, b.AuthorID,
		nullableTime(b.PublishedAt), b.CreatedAt, b.UpdatedAt)
	return err
}

func (s *SQLiteStore) GetBlog(ctx context.Context, id string) (*Blog, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, prompt, content, status, error_message, author, author_id, published_at, created_at, updated_at
		 FROM blogs WHERE id = ?`, id)
	return scanBlog(row)
}

func (s *SQLiteStore) ListBlogs(ctx context.Context) ([]*Blog, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, prompt, content, status, error_message, author, author_id, published_at, created_at, updated_at
		 FROM blogs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBlogs(rows)
}

func (s *SQLiteStore) ListPublished(ctx context.Context) ([]*Blog, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, prompt, content, status, error_message, author, author_id, published_at, created_at, updated_at
		 FROM blogs WHERE status = ? ORDER BY published_at DESC, created_at DESC, id`,
		string(StatusPublished))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBlogs(rows)
}

// UpdateBlog writes a full replacement of the row. There is no version
// column; concurrent writers race and the last one wins.
func (s *SQLiteStore) UpdateBlog(ctx context.Context, b *Blog) error {
	b.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE blogs SET prompt = ?, content = ?, status = ?, error_message = ?,
		 author = ?, author_id = ?, published_at = ?, updated_at = ? WHERE id = ?`,
		b.Prompt, b.Content, string(b.Status), b.ErrorMessage, b.Author, b.AuthorID,
		nullableTime(b.PublishedAt), b.UpdatedAt, b.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) DeleteBlog(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	_, err = s.db.ExecContext(ctx, `DELETE FROM revisions WHERE blog_id = ?`, id)
	return err
}

func (s *SQLiteStore) InsertRevision(ctx context.Context, r *Revision) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO revisions (id, blog_id, user_id, what, how, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.BlogID, r.UserID, r.What, r.How, r.CreatedAt)
	return err
}

func (s *SQLiteStore) ListRevisions(ctx context.Context, blogID string) ([]*Revision, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, blog_id, user_id, what, how, created_at
		 FROM revisions WHERE blog_id = ? ORDER BY created_at DESC, id`, blogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Revision
	for rows.Next() {
		var r Revision
		if err := rows.Scan(&r.ID, &r.BlogID, &r.UserID, &r.What, &r.How, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlog(row rowScanner) (*Blog, error) {
	var b Blog
	var status string
	var publishedAt sql.NullTime
	err := row.Scan(&b.ID, &b.Prompt, &b.Content, &status, &b.ErrorMessage,
		&b.Author, &b.AuthorID, &publishedAt, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	b.Status = Status(status)
	if publishedAt.Valid {
		t := publishedAt.Time
		b.PublishedAt = &t
	}
	return &b, nil
}

func collectBlogs(rows *sql.Rows) ([]*Blog, error) {
	var out []*Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
