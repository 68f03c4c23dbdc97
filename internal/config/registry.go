package config

import (
	"context"
	"fmt"
	"sync"

	anyllmlib "github.com/mozilla-ai/any-llm-go"

	"github.com/MrWong99/wordrace/internal/adapter"
	"github.com/MrWong99/wordrace/internal/adapter/anyllm"
	"github.com/MrWong99/wordrace/internal/adapter/openai"
	"github.com/MrWong99/wordrace/internal/puzzle"
	"github.com/MrWong99/wordrace/internal/resilience"
)

// Registry resolves bare model id strings from a race or Wordle submission
// (§6.2) against the operator-configured default roster, and lazily
// constructs the live adapter.StreamingAdapter each registered model needs.
// Adapters are cached after first construction and wrapped in a
// resilience.AdapterBreaker so a misbehaving provider degrades to fast
// failures instead of hanging every subsequent race.
type Registry struct {
	mu       sync.RWMutex
	entries  map[string]ModelEntry
	adapters map[string]adapter.StreamingAdapter
}

// NewRegistry builds a Registry from the model roster in a loaded Config.
func NewRegistry(entries []ModelEntry) *Registry {
	r := &Registry{
		entries:  make(map[string]ModelEntry, len(entries)),
		adapters: make(map[string]adapter.StreamingAdapter, len(entries)),
	}
	for _, e := range entries {
		r.entries[e.ID] = e
	}
	return r
}

// Resolve looks up id in the roster and returns the ModelSpec a submission
// would otherwise have to spell out in full.
func (r *Registry) Resolve(id string) (puzzle.ModelSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return puzzle.ModelSpec{}, false
	}
	return puzzle.ModelSpec{
		ID:                   e.ID,
		Name:                 e.Name,
		EndpointRef:          e.EndpointRef,
		Temperature:          e.Temperature,
		TopP:                 e.TopP,
		Thinking:             puzzle.ThinkingMode{Enabled: e.ThinkingEnabled, Level: puzzle.ThinkingLevel(e.ThinkingLevel)},
		CustomPromptTemplate: e.CustomPromptTemplate,
	}, true
}

// Adapter returns the live adapter for a registered model id, constructing
// and caching it on first use. Unregistered ids (full ModelSpec submissions
// with no matching roster entry) are the caller's responsibility to wire up
// directly — Adapter only serves the default roster.
func (r *Registry) Adapter(id string) (adapter.StreamingAdapter, error) {
	r.mu.RLock()
	if a, ok := r.adapters[id]; ok {
		r.mu.RUnlock()
		return a, nil
	}
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("config: no registered model %q", id)
	}

	built, err := BuildAdapter(e)
	if err != nil {
		return nil, fmt.Errorf("config: build adapter for %q: %w", id, err)
	}

	var wrapped adapter.StreamingAdapter = built
	if e.Fallback != nil {
		fallbackBuilt, err := BuildAdapter(ModelEntry{
			ID: id, Provider: e.Fallback.Provider, EndpointRef: e.Fallback.EndpointRef,
			APIKey: e.Fallback.APIKey, BaseURL: e.Fallback.BaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("config: build fallback adapter for %q: %w", id, err)
		}
		fg := resilience.NewFallbackGroup(built, id, resilience.FallbackConfig{
			CircuitBreaker: resilience.CircuitBreakerConfig{Name: id},
		})
		fg.AddFallback(id+"-fallback", fallbackBuilt)
		wrapped = &fallbackStreamAdapter{group: fg}
	}
	wrapped = resilience.NewAdapterBreaker(wrapped, resilience.CircuitBreakerConfig{Name: id})

	r.mu.Lock()
	r.adapters[id] = wrapped
	r.mu.Unlock()
	return wrapped, nil
}

// fallbackStreamAdapter adapts a resilience.FallbackGroup of backends to the
// adapter.StreamingAdapter interface: Stream's start is tried against each
// backend in order via ExecuteWithResult, and the first one to start successfully
// serves the whole call. A failure after the stream has started does not
// trigger fallback — that is the per-attempt timeout/cancellation's job.
type fallbackStreamAdapter struct {
	group *resilience.FallbackGroup[adapter.StreamingAdapter]
}

func (f *fallbackStreamAdapter) Stream(ctx context.Context, req adapter.Request) (<-chan adapter.Delta, error) {
	return resilience.ExecuteWithResult(f.group, func(a adapter.StreamingAdapter) (<-chan adapter.Delta, error) {
		return a.Stream(ctx, req)
	})
}

// ModelHealth reports the circuit breaker state of every model adapter built
// so far, keyed by model id. Models never raced yet (no adapter built) are
// absent rather than reported closed, since no breaker has been created for
// them. Intended for a readiness check surfacing models that have tripped
// across prior races.
func (r *Registry) ModelHealth() map[string]resilience.State {
	r.mu.RLock()
	defer r.mu.RUnlock()

	health := make(map[string]resilience.State, len(r.adapters))
	for id, a := range r.adapters {
		if ab, ok := a.(*resilience.AdapterBreaker); ok {
			health[id] = ab.State()
		}
	}
	return health
}

// BuildAdapter constructs a live adapter.StreamingAdapter for a ModelEntry,
// routing to the dedicated openai adapter for the "openai" provider and to
// the any-llm-go backend for everything else. Exported so callers handling
// a submission's ad hoc, unregistered ModelSpec (one with its own provider
// credentials attached) can build an adapter without going through the
// roster-backed Registry.
func BuildAdapter(e ModelEntry) (adapter.StreamingAdapter, error) {
	if e.Provider == "openai" {
		var opts []openai.Option
		if e.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(e.BaseURL))
		}
		return openai.New(e.APIKey, opts...)
	}

	var opts []anyllmlib.Option
	if e.APIKey != "" {
		opts = append(opts, anyllmlib.WithAPIKey(e.APIKey))
	}
	if e.BaseURL != "" {
		opts = append(opts, anyllmlib.WithBaseURL(e.BaseURL))
	}
	return anyllm.New(e.Provider, opts...)
}
