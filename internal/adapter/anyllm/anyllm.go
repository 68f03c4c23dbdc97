// Package anyllm implements adapter.StreamingAdapter on top of
// github.com/mozilla-ai/any-llm-go, giving access to every provider it
// supports (Anthropic, Gemini, Ollama, DeepSeek, Mistral, Groq, llama.cpp,
// llamafile) through a single implementation.
package anyllm

import (
	"context"
	"fmt"
	"strings"

	anyllmlib "github.com/mozilla-ai/any-llm-go"
	"github.com/mozilla-ai/any-llm-go/providers/anthropic"
	"github.com/mozilla-ai/any-llm-go/providers/deepseek"
	"github.com/mozilla-ai/any-llm-go/providers/gemini"
	"github.com/mozilla-ai/any-llm-go/providers/groq"
	"github.com/mozilla-ai/any-llm-go/providers/llamacpp"
	"github.com/mozilla-ai/any-llm-go/providers/llamafile"
	"github.com/mozilla-ai/any-llm-go/providers/mistral"
	"github.com/mozilla-ai/any-llm-go/providers/ollama"
	anyllmoai "github.com/mozilla-ai/any-llm-go/providers/openai"

	"github.com/MrWong99/wordrace/internal/adapter"
	"github.com/MrWong99/wordrace/internal/puzzle"
)

// Adapter implements adapter.StreamingAdapter by wrapping an any-llm-go
// backend. A ModelSpec's EndpointRef selects the model name sent to that
// backend; the provider itself is fixed at construction.
type Adapter struct {
	backend anyllmlib.Provider
}

// New creates an Adapter backed by the named provider.
//
// providerName is one of: "openai", "anthropic", "gemini", "ollama",
// "deepseek", "mistral", "groq", "llamacpp", "llamafile". opts are any-llm-go
// configuration options (e.g. anyllmlib.WithAPIKey, anyllmlib.WithBaseURL);
// without an API key option, the backend falls back to the provider's
// standard environment variable.
func New(providerName string, opts ...anyllmlib.Option) (*Adapter, error) {
	if providerName == "" {
		return nil, fmt.Errorf("anyllm: providerName must not be empty")
	}

	backend, err := createBackend(providerName, opts...)
	if err != nil {
		return nil, fmt.Errorf("anyllm: create %q backend: %w", providerName, err)
	}

	return &Adapter{backend: backend}, nil
}

func createBackend(providerName string, opts ...anyllmlib.Option) (anyllmlib.Provider, error) {
	switch strings.ToLower(providerName) {
	case "openai":
		return anyllmoai.New(opts...)
	case "anthropic":
		return anthropic.New(opts...)
	case "gemini":
		return gemini.New(opts...)
	case "ollama":
		return ollama.New(opts...)
	case "deepseek":
		return deepseek.New(opts...)
	case "mistral":
		return mistral.New(opts...)
	case "groq":
		return groq.New(opts...)
	case "llamacpp":
		return llamacpp.New(opts...)
	case "llamafile":
		return llamafile.New(opts...)
	default:
		return nil, fmt.Errorf("unsupported provider %q; supported: openai, anthropic, gemini, ollama, deepseek, mistral, groq, llamacpp, llamafile", providerName)
	}
}

// Stream implements adapter.StreamingAdapter.
func (a *Adapter) Stream(ctx context.Context, req adapter.Request) (<-chan adapter.Delta, error) {
	params := buildParams(req)

	backendChunks, backendErrs := a.backend.CompletionStream(ctx, params)

	ch := make(chan adapter.Delta, 32)
	go func() {
		defer close(ch)

		var usage *anyllmlib.Usage
		for chunk := range backendChunks {
			if chunk.Usage != nil {
				usage = chunk.Usage
			}
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

		if err := <-backendErrs; err != nil {
			select {
			case ch <- adapter.Delta{Kind: adapter.DeltaError, Text: err.Error()}:
			case <-ctx.Done():
			}
			return
		}

		if usage != nil {
			select {
			case ch <- adapter.Delta{Kind: adapter.DeltaUsage, Usage: puzzle.TokenUsage{
				PromptTokens:     usage.PromptTokens,
				CompletionTokens: usage.CompletionTokens,
				TotalTokens:      usage.TotalTokens,
			}}:
			case <-ctx.Done():
			}
		}
	}()

	return ch, nil
}

// buildParams converts a Request into anyllm CompletionParams, folding in
// the ModelSpec's knobs and custom prompt template.
func buildParams(req adapter.Request) anyllmlib.CompletionParams {
	prompt := req.Prompt
	if req.Model.CustomPromptTemplate != "" {
		prompt = fmt.Sprintf(req.Model.CustomPromptTemplate, req.Prompt)
	}

	params := anyllmlib.CompletionParams{
		Model: req.Model.EndpointRef,
		Messages: []anyllmlib.Message{
			{Role: anyllmlib.RoleUser, Content: prompt},
		},
	}

	if req.Model.Temperature != nil {
		t := *req.Model.Temperature
		params.Temperature = &t
	}
	if req.Model.TopP != nil {
		p := *req.Model.TopP
		params.TopP = &p
	}
	if req.MaxOutputTokens > 0 {
		mt := req.MaxOutputTokens
		params.MaxTokens = &mt
	}
	if req.Model.Thinking.Enabled {
		effort := string(req.Model.Thinking.Level)
		params.ReasoningEffort = &effort
	}

	return params
}
