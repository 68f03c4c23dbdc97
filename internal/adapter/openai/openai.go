// Package openai implements adapter.StreamingAdapter using the OpenAI API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"

	"github.com/MrWong99/wordrace/internal/adapter"
	"github.com/MrWong99/wordrace/internal/puzzle"
)

// Adapter implements adapter.StreamingAdapter using the OpenAI chat
// completions API.
type Adapter struct {
	client oai.Client
}

// config holds optional configuration for Adapter.
type config struct {
	baseURL string
	timeout time.Duration
}

// Option is a functional option for New.
type Option func(*config)

// WithBaseURL overrides the default OpenAI API base URL — used to point at
// an OpenAI-compatible gateway instead of the public API.
func WithBaseURL(url string) Option {
	return func(c *config) { c.baseURL = url }
}

// WithTimeout sets a per-request HTTP client timeout, independent of the
// per-attempt timeout the attempt runner enforces via context.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// New constructs an Adapter authenticated with apiKey.
func New(apiKey string, opts ...Option) (*Adapter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: apiKey must not be empty")
	}

	cfg := &config{}
	for _, o := range opts {
		o(cfg)
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if cfg.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.baseURL))
	}
	if cfg.timeout > 0 {
		reqOpts = append(reqOpts, option.WithHTTPClient(&http.Client{Timeout: cfg.timeout}))
	}

	return &Adapter{client: oai.NewClient(reqOpts...)}, nil
}

// Stream implements adapter.StreamingAdapter.
func (a *Adapter) Stream(ctx context.Context, req adapter.Request) (<-chan adapter.Delta, error) {
	params := buildParams(req)

	stream := a.client.Chat.Completions.NewStreaming(ctx, params)
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("openai: start stream: %w", err)
	}

	ch := make(chan adapter.Delta, 32)
	go func() {
		defer close(ch)
		defer stream.Close()

		for stream.Next() {
			chunk := stream.Current()
			if len(chunk.Choices) == 0 {
				continue
			}
			text := chunk.Choices[0].Delta.Content
			if text != "" {
				select {
				case ch <- adapter.Delta{Kind: adapter.DeltaText, Text: text}:
				case <-ctx.Done():
					return
				}
			}
		}

		if err := stream.Err(); err != nil {
			select {
			case ch <- adapter.Delta{Kind: adapter.DeltaError, Text: recoverPartialText(err)}:
			case <-ctx.Done():
			}
			return
		}

		acc := stream.Current()
		if acc.Usage.TotalTokens > 0 {
			select {
			case ch <- adapter.Delta{Kind: adapter.DeltaUsage, Usage: puzzle.TokenUsage{
				PromptTokens:     int(acc.Usage.PromptTokens),
				CompletionTokens: int(acc.Usage.CompletionTokens),
				TotalTokens:      int(acc.Usage.TotalTokens),
			}}:
			case <-ctx.Done():
			}
		}
	}()

	return ch, nil
}

// recoverPartialText returns the text reported in a DeltaError: the
// Message of the *oai.Error that err wraps, when there is one and it is
// non-empty, otherwise the plain error text. It does not extract partial
// answer text from the response body.
func recoverPartialText(err error) string {
	var apiErr *oai.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

// buildParams converts a Request into OpenAI SDK params, folding in the
// ModelSpec's knobs (§4.3 step 2) and the custom prompt template if set.
func buildParams(req adapter.Request) oai.ChatCompletionNewParams {
	prompt := req.Prompt
	if req.Model.CustomPromptTemplate != "" {
		prompt = fmt.Sprintf(req.Model.CustomPromptTemplate, req.Prompt)
	}

	params := oai.ChatCompletionNewParams{
		Model:    shared.ChatModel(req.Model.EndpointRef),
		Messages: []oai.ChatCompletionMessageParamUnion{oai.UserMessage(prompt)},
	}

	if req.Model.Temperature != nil {
		params.Temperature = param.NewOpt(*req.Model.Temperature)
	}
	if req.Model.TopP != nil {
		params.TopP = param.NewOpt(*req.Model.TopP)
	}
	if req.MaxOutputTokens > 0 {
		params.MaxCompletionTokens = param.NewOpt(int64(req.MaxOutputTokens))
	}
	if req.Model.Thinking.Enabled {
		params.ReasoningEffort = shared.ReasoningEffort(req.Model.Thinking.Level)
	}

	return params
}
