package editor

import (
	"context"
	"strings"
	"time"

	"blogsmith/internal/ai"
)

// Rewriter invokes the generative backend for targeted rewrites and full
// drafts. All model output passes through response flattening and fence
// cleanup before it reaches the document.
type Rewriter struct {
	completer ai.Completer
	prompts   *PromptBuilder
	window    int
	timeout   time.Duration
}

func NewRewriter(completer ai.Completer, window int, timeout time.Duration) *Rewriter {
	if window <= 0 {
		window = 300
	}
	return &Rewriter{
		completer: completer,
		prompts:   &PromptBuilder{},
		window:    window,
		timeout:   timeout,
	}
}

// ContextWindow reports the configured context window size in characters.
func (r *Rewriter) ContextWindow() int {
	return r.window
}

// RewriteExcerpt sends the excerpt plus its context windows to the model and
// returns the rewritten excerpt as a plain string.
func (r *Rewriter) RewriteExcerpt(ctx context.Context, excerpt, how, leftCtx, rightCtx string) (string, error) {
	user := r.prompts.BuildRewritePrompt(how, leftCtx, excerpt, rightCtx)
	return r.generate(ctx, r.prompts.RewriteSystem(), user)
}

// GenerateArticle produces an initial markdown draft from a topic prompt.
func (r *Rewriter) GenerateArticle(ctx context.Context, topic string) (string, error) {
	user := r.prompts.BuildArticlePrompt(topic)
	return r.generate(ctx, r.prompts.ArticleSystem(), user)
}

func (r *Rewriter) generate(ctx context.Context, system, user string) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	resp, err := r.completer.Complete(ctx, system, user)
	if err != nil {
		return "", err
	}
	return cleanMarkdownOutput(resp.Flatten()), nil
}

// cleanMarkdownOutput strips a wrapping code fence some models add around
// markdown output.
func cleanMarkdownOutput(text string) string {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "```markdown") && strings.HasSuffix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```markdown")
		trimmed = strings.TrimSuffix(trimmed, "```")
		return strings.TrimSpace(trimmed)
	}
	return text
}
