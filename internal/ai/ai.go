package ai

import (
	"context"
	"encoding/json"
	"time"
)

// Completer abstracts the text generation backend so the engine can be
// exercised with a fake. One call per rewrite or full generation.
type Completer interface {
	Complete(ctx context.Context, system, user string) (Response, error)
}

// Options carries the provider configuration. Passed explicitly to
// constructors, never read from process state.
type Options struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float64
	Timeout     time.Duration
}

// Kind discriminates the shapes a backend response can take.
type Kind int

const (
	// KindText is a plain string payload.
	KindText Kind = iota
	// KindParts is a list of typed content parts.
	KindParts
	// KindOpaque is anything else the backend handed back.
	KindOpaque
)

// Part is one element of a structured response.
type Part struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Response is the raw payload of a completion call before normalization.
type Response struct {
	Kind  Kind
	Text  string
	Parts []Part
	Raw   any
}

func TextResponse(s string) Response {
	return Response{Kind: KindText, Text: s}
}

func PartsResponse(parts ...Part) Response {
	return Response{Kind: KindParts, Parts: parts}
}

func OpaqueResponse(v any) Response {
	return Response{Kind: KindOpaque, Raw: v}
}

// Flatten normalizes a response of any shape into a plain string. It never
// fails: a string payload is returned directly, a structured payload yields
// its first text part, and anything else falls back to a JSON rendering of
// whatever was returned.
func (r Response) Flatten() string {
	switch r.Kind {
	case KindText:
		return r.Text
	case KindParts:
		for _, p := range r.Parts {
			if p.Type == "text" {
				return p.Text
			}
		}
		return jsonFallback(r.Parts)
	case KindOpaque:
		return jsonFallback(r.Raw)
	}
	return ""
}

func jsonFallback(v any) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
