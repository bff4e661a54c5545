package ai

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAICompleter implements Completer using the official openai-go SDK
// (chat completions).
type OpenAICompleter struct {
	model       string
	temperature float64
	reqOpts     []option.RequestOption
}

func NewOpenAICompleter(opts Options) (*OpenAICompleter, error) {
	if opts.APIKey == "" {
		return nil, errors.New("openai api key missing; provide ai.api_key")
	}
	if opts.Model == "" {
		return nil, errors.New("openai model is required")
	}
	reqOpts := []option.RequestOption{option.WithAPIKey(opts.APIKey)}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	return &OpenAICompleter{
		model:       opts.Model,
		temperature: opts.Temperature,
		reqOpts:     reqOpts,
	}, nil
}

func (o *OpenAICompleter) Complete(ctx context.Context, system, user string) (Response, error) {
	client := openai.NewClient(o.reqOpts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(o.temperature),
	})
	if err != nil {
		return Response{}, err
	}
	if len(resp.Choices) == 0 {
		return Response{}, errors.New("openai: empty choices")
	}
	return TextResponse(resp.Choices[0].Message.Content), nil
}
