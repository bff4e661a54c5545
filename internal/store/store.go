package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a blog id does not exist.
var ErrNotFound = errors.New("blog not found")

// Status is the lifecycle state of a blog document.
type Status string

const (
	// StatusPending: content is being produced and must not be patched.
	StatusPending Status = "pending"
	// StatusReady: content is populated and editable (draft).
	StatusReady Status = "ready"
	// StatusPublished: visible to readers; edits pull it back to ready.
	StatusPublished Status = "published"
	// StatusError: the last generation or rewrite failed.
	StatusError Status = "error"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReady, StatusPublished, StatusError:
		return true
	}
	return false
}

// Blog is the persisted document. Content is a single markdown string and is
// only meaningful once status leaves pending.
type Blog struct {
	ID           string     `json:"id"`
	Prompt       string     `json:"prompt"`
	Content      string     `json:"content"`
	Status       Status     `json:"status"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
	Author       string     `json:"author,omitempty"`
	AuthorID     string     `json:"authorId,omitempty"`
	PublishedAt  *time.Time `json:"publishedAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Revision is one append-only audit entry for a successful content rewrite.
// Revisions are only ever inserted and listed.
type Revision struct {
	ID        string    `json:"id"`
	BlogID    string    `json:"blogId"`
	UserID    string    `json:"userId,omitempty"`
	What      string    `json:"what"`
	How       string    `json:"how"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists blogs and their revision history. Updates are full
// replacements with no version check: if two edits race on the same blog the
// last write wins.
type Store interface {
	InsertBlog(ctx context.Context, b *Blog) error
	GetBlog(ctx context.Context, id string) (*Blog, error)
	ListBlogs(ctx context.Context) ([]*Blog, error)
	ListPublished(ctx context.Context) ([]*Blog, error)
	UpdateBlog(ctx context.Context, b *Blog) error
	DeleteBlog(ctx context.Context, id string) error

	InsertRevision(ctx context.Context, r *Revision) error
	ListRevisions(ctx context.Context, blogID string) ([]*Revision, error)

	Close() error
}
