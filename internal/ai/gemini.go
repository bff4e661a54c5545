package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiCompleter implements Completer using the Gemini API.
type GeminiCompleter struct {
	client      *genai.Client
	model       string
	temperature float64
}

func NewGeminiCompleter(ctx context.Context, opts Options) (*GeminiCompleter, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiCompleter{
		client:      client,
		model:       opts.Model,
		temperature: opts.Temperature,
	}, nil
}

func (g *GeminiCompleter) Complete(ctx context.Context, system, user string) (Response, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr(float32(g.temperature)),
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(user), cfg)
	if err != nil {
		return Response{}, err
	}
	return geminiResponse(resp), nil
}

// geminiResponse maps the SDK's candidate/part structure onto the Response
// union. Candidates without content are skipped.
func geminiResponse(resp *genai.GenerateContentResponse) Response {
	if resp == nil {
		return OpaqueResponse(nil)
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		parts := make([]Part, 0, len(cand.Content.Parts))
		for _, p := range cand.Content.Parts {
			if p == nil {
				continue
			}
			parts = append(parts, Part{Type: "text", Text: p.Text})
		}
		if len(parts) > 0 {
			return PartsResponse(parts...)
		}
	}
	return OpaqueResponse(resp)
}
