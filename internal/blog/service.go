package blog

import (
	"context"
	"errors"
	"strings"
	"time"

	"blogsmith/internal/editor"
	"blogsmith/internal/logger"
	"blogsmith/internal/store"
)

// Service orchestrates the drafting pipeline: full generation of new drafts
// and targeted, descriptor-driven edits of existing ones. It owns every
// document status transition except the explicit publish flip.
type Service struct {
	store    store.Store
	rewriter *editor.Rewriter
	log      *logger.Logger
}

func NewService(st store.Store, rw *editor.Rewriter, log *logger.Logger) *Service {
	return &Service{
		store:    st,
		rewriter: rw,
		log:      log.With("component", "blog.Service"),
	}
}

type CreateInput struct {
	Prompt   string
	Author   string
	AuthorID string
}

// CreateFromPrompt inserts a pending blog, then runs one full generation.
// Success moves it to ready with populated content; failure moves it to error
// with the failure detail. The row persists either way so the caller can
// inspect and retry.
func (s *Service) CreateFromPrompt(ctx context.Context, in CreateInput) (*store.Blog, error) {
	prompt := strings.TrimSpace(in.Prompt)
	if prompt == "" {
		return nil, validationError("prompt is required")
	}

	b := &store.Blog{
		Prompt:   prompt,
		Status:   store.StatusPending,
		Author:   in.Author,
		AuthorID: in.AuthorID,
	}
	if err := s.store.InsertBlog(ctx, b); err != nil {
		return nil, storeError("failed to create blog", err)
	}

	content, err := s.rewriter.GenerateArticle(ctx, prompt)
	if err != nil {
		s.log.Error("article generation failed", "blog_id", b.ID, "error", err)
		b.Status = store.StatusError
		b.ErrorMessage = err.Error()
		if uerr := s.store.UpdateBlog(ctx, b); uerr != nil {
			s.log.Error("failed to persist generation failure", "blog_id", b.ID, "error", uerr)
			return b, storeError("failed to save blog", uerr)
		}
		return b, generationError(err)
	}

	b.Content = content
	b.Status = store.StatusReady
	b.ErrorMessage = ""
	if err := s.store.UpdateBlog(ctx, b); err != nil {
		return b, storeError("failed to save blog", err)
	}
	return b, nil
}

// ApplyTargetedEdit locates the passage the descriptor refers to, rewrites
// only that excerpt through the model, and splices the result back.
//
// A published blog is pulled back to ready before the rewrite is attempted
// and stays there even if the rewrite then fails; downstream revision and
// notification behavior depends on that pre-transition, so it is deliberate.
// A descriptor that matches nothing leaves the blog byte-for-byte untouched.
func (s *Service) ApplyTargetedEdit(ctx context.Context, id, userID, what, how string) (*store.Blog, error) {
	what = strings.TrimSpace(what)
	how = strings.TrimSpace(how)
	if what == "" {
		return nil, validationError("please describe what part to change")
	}
	if how == "" {
		return nil, validationError("please describe how it should change")
	}

	b, err := s.getBlog(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status == store.StatusPending {
		return nil, validationError("blog content is still being generated")
	}

	span, ok := editor.Locate(b.Content, what)
	if !ok {
		return nil, targetNotFoundError()
	}

	// Unconditional pre-transition: an edit attempt on a published blog pulls
	// it back to draft before the outcome of the rewrite is known.
	if b.Status == store.StatusPublished {
		b.Status = store.StatusReady
		b.ErrorMessage = ""
		if err := s.store.UpdateBlog(ctx, b); err != nil {
			return nil, storeError("failed to save blog", err)
		}
	}

	leftCtx, rightCtx := editor.ContextWindows(b.Content, span, s.rewriter.ContextWindow())
	rewritten, err := s.rewriter.RewriteExcerpt(ctx, span.Slice(b.Content), how, leftCtx, rightCtx)
	if err != nil {
		s.log.Error("excerpt rewrite failed", "blog_id", b.ID, "error", err)
		b.Status = store.StatusError
		b.ErrorMessage = err.Error()
		if uerr := s.store.UpdateBlog(ctx, b); uerr != nil {
			s.log.Error("failed to persist rewrite failure", "blog_id", b.ID, "error", uerr)
			return b, storeError("failed to save blog", uerr)
		}
		return b, generationError(err)
	}

	b.Content = editor.Splice(b.Content, span, rewritten)
	b.Status = store.StatusReady
	b.ErrorMessage = ""
	if err := s.store.UpdateBlog(ctx, b); err != nil {
		return b, storeError("failed to save blog", err)
	}

	rev := &store.Revision{BlogID: b.ID, UserID: userID, What: what, How: how}
	if err := s.store.InsertRevision(ctx, rev); err != nil {
		s.log.Error("failed to record revision", "blog_id", b.ID, "error", err)
		return b, storeError("failed to record revision", err)
	}
	return b, nil
}

// UpdateContent replaces the full content manually, without a model call.
// Like an AI edit it drops a published blog back to ready; unlike one it
// records no revision, since revisions capture descriptor-driven edits.
func (s *Service) UpdateContent(ctx context.Context, id, full string) (*store.Blog, error) {
	if strings.TrimSpace(full) == "" {
		return nil, validationError("full content required")
	}

	b, err := s.getBlog(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status == store.StatusPending {
		return nil, validationError("blog content is still being generated")
	}

	b.Content = full
	b.Status = store.StatusReady
	b.ErrorMessage = ""
	if err := s.store.UpdateBlog(ctx, b); err != nil {
		return nil, storeError("failed to save blog", err)
	}
	return b, nil
}

// SetStatus is the explicit external status change (publish / unpublish /
// reset). The engine itself never decides to publish. The first transition to
// published stamps PublishedAt; later republishes keep the original stamp.
func (s *Service) SetStatus(ctx context.Context, id string, status store.Status) (*store.Blog, error) {
	if !status.Valid() {
		return nil, validationError("invalid status: " + string(status))
	}

	b, err := s.getBlog(ctx, id)
	if err != nil {
		return nil, err
	}

	b.Status = status
	if status == store.StatusPublished && b.PublishedAt == nil {
		now := time.Now().UTC()
		b.PublishedAt = &now
	}
	if err := s.store.UpdateBlog(ctx, b); err != nil {
		return nil, storeError("failed to save blog", err)
	}
	return b, nil
}

func (s *Service) Get(ctx context.Context, id string) (*store.Blog, error) {
	return s.getBlog(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*store.Blog, error) {
	blogs, err := s.store.ListBlogs(ctx)
	if err != nil {
		return nil, storeError("failed to list blogs", err)
	}
	return blogs, nil
}

func (s *Service) ListPublished(ctx context.Context) ([]*store.Blog, error) {
	blogs, err := s.store.ListPublished(ctx)
	if err != nil {
		return nil, storeError("failed to list blogs", err)
	}
	return blogs, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.store.DeleteBlog(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return notFoundError(id)
	}
	if err != nil {
		return storeError("failed to delete blog", err)
	}
	return nil
}

func (s *Service) Revisions(ctx context.Context, id string) ([]*store.Revision, error) {
	if _, err := s.getBlog(ctx, id); err != nil {
		return nil, err
	}
	revs, err := s.store.ListRevisions(ctx, id)
	if err != nil {
		return nil, storeError("failed to list revisions", err)
	}
	return revs, nil
}

func (s *Service) getBlog(ctx context.Context, id string) (*store.Blog, error) {
	if strings.TrimSpace(id) == "" {
		return nil, validationError("blog id required")
	}
	b, err := s.store.GetBlog(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFoundError(id)
	}
	if err != nil {
		return nil, storeError("failed to load blog", err)
	}
	return b, nil
}
