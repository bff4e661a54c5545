package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogsmith/internal/ai"
	"blogsmith/internal/blog"
	"blogsmith/internal/editor"
	"blogsmith/internal/logger"
	"blogsmith/internal/store"
)

type stubCompleter struct {
	reply string
	err   error
}

func (c *stubCompleter) Complete(context.Context, string, string) (ai.Response, error) {
	if c.err != nil {
		return ai.Response{}, c.err
	}
	return ai.TextResponse(c.reply), nil
}

func newTestServer(t *testing.T, completer ai.Completer) (*gin.Engine, store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "blogs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	rw := editor.NewRewriter(completer, 300, time.Minute)
	svc := blog.NewService(st, rw, logger.Nop())
	return New(svc, logger.Nop()).Router(), st
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateEndpoint(t *testing.T) {
	router, _ := newTestServer(t, &stubCompleter{reply: "# Sourdough\n\nContent."})

	w := doJSON(t, router, http.MethodPost, "/api/blogs/create",
		gin.H{"prompt": "a history of sourdough"})
	require.Equal(t, http.StatusCreated, w.Code)

	var b store.Blog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	assert.Equal(t, store.StatusReady, b.Status)
	assert.Contains(t, b.Content, "Sourdough")
}

func TestCreateEndpoint_EmptyPrompt(t *testing.T) {
	router, _ := newTestServer(t, &stubCompleter{reply: "unused"})

	w := doJSON(t, router, http.MethodPost, "/api/blogs/create", gin.H{"prompt": " "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateEndpoint_GenerationFailureReturnsBlogID(t *testing.T) {
	router, _ := newTestServer(t, &stubCompleter{err: errors.New("backend down")})

	w := doJSON(t, router, http.MethodPost, "/api/blogs/create",
		gin.H{"prompt": "any topic"})
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["blogId"])
	assert.Contains(t, resp["error"], "backend down")
}

func TestEditEndpoint(t *testing.T) {
	router, st := newTestServer(t, &stubCompleter{reply: "dog"})
	b := &store.Blog{Prompt: "p", Content: "# Title\nThe cat sat on the mat.", Status: store.StatusReady}
	require.NoError(t, st.InsertBlog(context.Background(), b))

	w := doJSON(t, router, http.MethodPatch, "/api/blogs/update-blogContent",
		gin.H{"blog_id": b.ID, "what": "cat", "how": "make it a dog"})
	require.Equal(t, http.StatusOK, w.Code)

	saved, err := st.GetBlog(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "# Title\nThe dog sat on the mat.", saved.Content)
}

func TestEditEndpoint_TargetNotFoundIs422(t *testing.T) {
	router, st := newTestServer(t, &stubCompleter{reply: "unused"})
	b := &store.Blog{Prompt: "p", Content: "content", Status: store.StatusReady}
	require.NoError(t, st.InsertBlog(context.Background(), b))

	w := doJSON(t, router, http.MethodPatch, "/api/blogs/update-blogContent",
		gin.H{"blog_id": b.ID, "what": "nonexistent phrase", "how": "change it"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "starts with")
}

func TestEditEndpoint_MissingBlogIs404(t *testing.T) {
	router, _ := newTestServer(t, &stubCompleter{reply: "unused"})

	w := doJSON(t, router, http.MethodPatch, "/api/blogs/update-blogContent",
		gin.H{"blog_id": "ghost", "what": "a", "how": "b"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatusEndpoint_Publish(t *testing.T) {
	router, st := newTestServer(t, &stubCompleter{})
	b := &store.Blog{Prompt: "p", Content: "content", Status: store.StatusReady}
	require.NoError(t, st.InsertBlog(context.Background(), b))

	w := doJSON(t, router, http.MethodPatch, "/api/blogs/update-blogStatus",
		gin.H{"blog_id": b.ID, "status": "published"})
	require.Equal(t, http.StatusOK, w.Code)

	saved, err := st.GetBlog(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, store.StatusPublished, saved.Status)
	assert.NotNil(t, saved.PublishedAt)
}

func TestStatusEndpoint_InvalidStatus(t *testing.T) {
	router, st := newTestServer(t, &stubCompleter{})
	b := &store.Blog{Prompt: "p", Content: "content", Status: store.StatusReady}
	require.NoError(t, st.InsertBlog(context.Background(), b))

	w := doJSON(t, router, http.MethodPatch, "/api/blogs/update-blogStatus",
		gin.H{"blog_id": b.ID, "status": "archived"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListEndpoints(t *testing.T) {
	router, st := newTestServer(t, &stubCompleter{})
	now := time.Now().UTC()
	require.NoError(t, st.InsertBlog(context.Background(),
		&store.Blog{Prompt: "a", Status: store.StatusPublished, PublishedAt: &now}))
	require.NoError(t, st.InsertBlog(context.Background(),
		&store.Blog{Prompt: "b", Status: store.StatusReady}))

	w := doJSON(t, router, http.MethodGet, "/api/blogs/get-all", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []store.Blog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 2)

	w = doJSON(t, router, http.MethodGet, "/api/blogs/get-allPublished", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var published []store.Blog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &published))
	assert.Len(t, published, 1)
}

func TestRevisionsEndpoint(t *testing.T) {
	router, st := newTestServer(t, &stubCompleter{reply: "dog"})
	b := &store.Blog{Prompt: "p", Content: "The cat sat.", Status: store.StatusReady}
	require.NoError(t, st.InsertBlog(context.Background(), b))

	doJSON(t, router, http.MethodPatch, "/api/blogs/update-blogContent",
		gin.H{"blog_id": b.ID, "what": "cat", "how": "make it a dog"})

	w := doJSON(t, router, http.MethodGet, "/api/revisions/get-by-blog?blog_id="+b.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var revs []store.Revision
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &revs))
	require.Len(t, revs, 1)
	assert.Equal(t, "cat", revs[0].What)
}

func TestPreviewEndpoint(t *testing.T) {
	router, st := newTestServer(t, &stubCompleter{})
	b := &store.Blog{Prompt: "p", Content: "# Hello\n\nworld", Status: store.StatusReady}
	require.NoError(t, st.InsertBlog(context.Background(), b))

	w := doJSON(t, router, http.MethodGet, "/api/blogs/preview?blog_id="+b.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>Hello</h1>")
}

func TestHealthcheck(t *testing.T) {
	router, _ := newTestServer(t, &stubCompleter{})

	w := doJSON(t, router, http.MethodGet, "/healthcheck", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
