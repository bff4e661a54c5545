package ai

import (
	"context"
	"fmt"
	"strings"
)

// NewCompleter builds a Completer for the configured provider.
func NewCompleter(ctx context.Context, opts Options) (Completer, error) {
	provider := strings.ToLower(strings.TrimSpace(opts.Provider))
	if provider == "" {
		provider = "gemini"
	}

	switch provider {
	case "gemini":
		return NewGeminiCompleter(ctx, opts)
	case "openai":
		return NewOpenAICompleter(opts)
	case "mock":
		return MockCompleter{}, nil
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", opts.Provider)
	}
}
