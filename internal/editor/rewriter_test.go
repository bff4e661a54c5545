package editor

import (
	"context"
	"errors"
	"testing"
	"time"

	"blogsmith/internal/ai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	resp       ai.Response
	err        error
	lastSystem string
	lastUser   string
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string) (ai.Response, error) {
	f.lastSystem = system
	f.lastUser = user
	return f.resp, f.err
}

func TestRewriteExcerpt_BuildsLabeledPayload(t *testing.T) {
	fake := &fakeCompleter{resp: ai.TextResponse("dog")}
	rw := NewRewriter(fake, 300, time.Minute)

	out, err := rw.RewriteExcerpt(t.Context(), "cat", "make it a dog", "The ", " sat")
	require.NoError(t, err)
	assert.Equal(t, "dog", out)

	assert.Contains(t, fake.lastSystem, "Rewrite ONLY the excerpt")
	assert.Contains(t, fake.lastUser, "HOW to change it:\nmake it a dog")
	assert.Contains(t, fake.lastUser, "Left context (do NOT rewrite):\n<<<\nThe \n>>>")
	assert.Contains(t, fake.lastUser, "Excerpt to rewrite (rewrite ONLY this):\n---\ncat\n---")
	assert.Contains(t, fake.lastUser, "Right context (do NOT rewrite):\n<<<\n sat\n>>>")
}

func TestRewriteExcerpt_PropagatesBackendError(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("rate limited")}
	rw := NewRewriter(fake, 300, time.Minute)

	_, err := rw.RewriteExcerpt(t.Context(), "cat", "make it a dog", "", "")
	require.Error(t, err)
}

func TestGenerateArticle_EmbedsTopic(t *testing.T) {
	fake := &fakeCompleter{resp: ai.TextResponse("# Draft")}
	rw := NewRewriter(fake, 300, 0)

	out, err := rw.GenerateArticle(t.Context(), "a history of sourdough")
	require.NoError(t, err)
	assert.Equal(t, "# Draft", out)
	assert.Contains(t, fake.lastUser, "Topic and guidance:\na history of sourdough")
	assert.Contains(t, fake.lastUser, "Start with an H1 title")
}

func TestGenerate_StripsMarkdownFence(t *testing.T) {
	fake := &fakeCompleter{resp: ai.TextResponse("```markdown\n# Draft\n```")}
	rw := NewRewriter(fake, 300, 0)

	out, err := rw.GenerateArticle(t.Context(), "topic")
	require.NoError(t, err)
	assert.Equal(t, "# Draft", out)
}

func TestGenerate_KeepsWhitespaceSensitiveExcerpts(t *testing.T) {
	fake := &fakeCompleter{resp: ai.TextResponse(" leading and trailing ")}
	rw := NewRewriter(fake, 300, 0)

	out, err := rw.RewriteExcerpt(t.Context(), "x", "how", "", "")
	require.NoError(t, err)
	assert.Equal(t, " leading and trailing ", out)
}

func TestGenerate_NormalizesPartsResponse(t *testing.T) {
	fake := &fakeCompleter{resp: ai.PartsResponse(ai.Part{Type: "text", Text: "rewritten"})}
	rw := NewRewriter(fake, 300, 0)

	out, err := rw.RewriteExcerpt(t.Context(), "x", "how", "", "")
	require.NoError(t, err)
	assert.Equal(t, "rewritten", out)
}

func TestNewRewriter_DefaultsWindow(t *testing.T) {
	rw := NewRewriter(&fakeCompleter{}, 0, 0)
	assert.Equal(t, 300, rw.ContextWindow())
}
