package ai

import (
	"context"
	"strings"
)

// MockCompleter is a placeholder backend for local runs without an API key.
// It echoes the request back as a small markdown document.
type MockCompleter struct{}

func (MockCompleter) Complete(_ context.Context, _, user string) (Response, error) {
	var sb strings.Builder
	sb.WriteString("# Generated Draft\n\n")
	sb.WriteString("This is placeholder output produced without calling a model.\n\n")
	sb.WriteString("## Request\n\n")
	sb.WriteString("```\n")
	sb.WriteString(user)
	sb.WriteString("\n```\n")
	return TextResponse(sb.String()), nil
}
