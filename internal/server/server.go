package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"blogsmith/internal/blog"
	"blogsmith/internal/logger"
	"blogsmith/internal/markdown"
	"blogsmith/internal/store"
)

// Server exposes the drafting service over HTTP. Routing and status mapping
// only; every decision lives in the service layer.
type Server struct {
	svc *blog.Service
	log *logger.Logger
}

func New(svc *blog.Service, log *logger.Logger) *Server {
	return &Server{
		svc: svc,
		log: log.With("component", "server"),
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	blogs := api.Group("/blogs")
	{
		blogs.POST("/create", s.createBlog)
		blogs.GET("/get-all", s.listBlogs)
		blogs.GET("/get-by-id", s.getBlog)
		blogs.GET("/get-allPublished", s.listPublished)
		blogs.GET("/preview", s.previewBlog)
		blogs.DELETE("/delete", s.deleteBlog)
		blogs.PATCH("/update-blogStatus", s.updateStatus)
		blogs.PATCH("/update-blogContent", s.updateContentAI)
		blogs.PATCH("/update-content", s.updateContentManual)
	}

	revisions := api.Group("/revisions")
	{
		revisions.GET("/get-by-blog", s.listRevisions)
	}

	return r
}

func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

type createRequest struct {
	Prompt   string `json:"prompt"`
	Author   string `json:"author"`
	AuthorID string `json:"authorId"`
}

func (s *Server) createBlog(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	b, err := s.svc.CreateFromPrompt(c.Request.Context(), blog.CreateInput{
		Prompt:   req.Prompt,
		Author:   req.Author,
		AuthorID: req.AuthorID,
	})
	if err != nil {
		if blog.CodeOf(err) == blog.CodeGeneration && b != nil {
			// The blog row persists in error state so the caller can retry.
			c.JSON(http.StatusInternalServerError, gin.H{"error": b.ErrorMessage, "blogId": b.ID})
			return
		}
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (s *Server) listBlogs(c *gin.Context) {
	blogs, err := s.svc.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

func (s *Server) listPublished(c *gin.Context) {
	blogs, err := s.svc.ListPublished(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

func (s *Server) getBlog(c *gin.Context) {
	b, err := s.svc.Get(c.Request.Context(), c.Query("blog_id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (s *Server) previewBlog(c *gin.Context) {
	b, err := s.svc.Get(c.Request.Context(), c.Query("blog_id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	html, err := markdown.RenderHTML(b.Content)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (s *Server) deleteBlog(c *gin.Context) {
	if err := s.svc.Delete(c.Request.Context(), c.Query("blog_id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type updateStatusRequest struct {
	BlogID string `json:"blog_id"`
	Status string `json:"status"`
}

func (s *Server) updateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	b, err := s.svc.SetStatus(c.Request.Context(), req.BlogID, store.Status(req.Status))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "blog": b})
}

type updateContentAIRequest struct {
	BlogID string `json:"blog_id"`
	What   string `json:"what"`
	How    string `json:"how"`
	UserID string `json:"user_id"`
}

func (s *Server) updateContentAI(c *gin.Context) {
	var req updateContentAIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	b, err := s.svc.ApplyTargetedEdit(c.Request.Context(), req.BlogID, req.UserID, req.What, req.How)
	if err != nil {
		if blog.CodeOf(err) == blog.CodeGeneration && b != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": b.ErrorMessage, "blogId": b.ID})
			return
		}
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "blog": b})
}

type updateContentRequest struct {
	BlogID string `json:"blog_id"`
	Full   string `json:"full"`
}

func (s *Server) updateContentManual(c *gin.Context) {
	var req updateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	b, err := s.svc.UpdateContent(c.Request.Context(), req.BlogID, req.Full)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "blog": b})
}

func (s *Server) listRevisions(c *gin.Context) {
	revs, err := s.svc.Revisions(c.Request.Context(), c.Query("blog_id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, revs)
}

// respondError maps the failure taxonomy onto HTTP statuses. Expected,
// user-correctable failures are not logged; backend trouble is.
func (s *Server) respondError(c *gin.Context, err error) {
	var de *blog.DomainError
	if !errors.As(err, &de) {
		s.log.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	switch de.Code {
	case blog.CodeValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": de.Message})
	case blog.CodeNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case blog.CodeTargetNotFound:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": de.Message})
	default:
		s.log.Error("request failed", "path", c.FullPath(), "code", string(de.Code), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": de.Message})
	}
}
