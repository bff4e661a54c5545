package editor

import (
	"fmt"
	"strings"
)

// PromptBuilder constructs the instruction payloads sent to the model.
type PromptBuilder struct{}

const rewriteSystemPrompt = "You are a precise editor. Rewrite ONLY the excerpt provided. " +
	"Keep tone and markdown style consistent with the surrounding context. " +
	"Return ONLY the rewritten excerpt — no extra commentary."

const articleSystemPrompt = "You are a helpful blog writer that produces clear, accurate, well-structured markdown articles."

func (pb *PromptBuilder) RewriteSystem() string {
	return rewriteSystemPrompt
}

func (pb *PromptBuilder) ArticleSystem() string {
	return articleSystemPrompt
}

// BuildRewritePrompt assembles the user message for a targeted rewrite. The
// context blocks are labeled non-rewritable so the model does not touch or
// duplicate neighboring content.
func (pb *PromptBuilder) BuildRewritePrompt(how, leftCtx, excerpt, rightCtx string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "HOW to change it:\n%s\n\n", how)
	fmt.Fprintf(&sb, "Left context (do NOT rewrite):\n<<<\n%s\n>>>\n\n", leftCtx)
	fmt.Fprintf(&sb, "Excerpt to rewrite (rewrite ONLY this):\n---\n%s\n---\n\n", excerpt)
	fmt.Fprintf(&sb, "Right context (do NOT rewrite):\n<<<\n%s\n>>>", rightCtx)
	return sb.String()
}

// BuildArticlePrompt assembles the user message for generating a full draft
// from scratch.
func (pb *PromptBuilder) BuildArticlePrompt(topic string) string {
	var sb strings.Builder
	sb.WriteString("Write a high-quality blog post in markdown.\n")
	sb.WriteString("Requirements:\n")
	sb.WriteString("- Start with an H1 title\n")
	sb.WriteString("- Use subheadings, lists, and short paragraphs\n")
	sb.WriteString("- Be factual; if unsure, say so (no hallucinations)\n")
	sb.WriteString("- Aim for ~900–1200 words\n\n")
	fmt.Fprintf(&sb, "Topic and guidance:\n%s", topic)
	return sb.String()
}
