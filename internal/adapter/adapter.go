// Package adapter defines the contract between the race engine and a model
// provider: a prompt goes in, a lazy finite sequence of deltas comes out.
// Implementations are expected to be safe for concurrent use and to respect
// context cancellation promptly — once ctx is done, no further deltas are
// sent and the returned channel is closed.
package adapter

import (
	"context"

	"github.com/MrWong99/wordrace/internal/puzzle"
)

// DeltaKind tags the three possible shapes a Delta can take.
type DeltaKind string

const (
	// DeltaReasoning carries opaque side-channel thinking text. It never
	// contributes to the final output.
	DeltaReasoning DeltaKind = "reasoning"

	// DeltaText carries a fragment of the model's answer. Text deltas,
	// concatenated in emission order, equal the final output.
	DeltaText DeltaKind = "text"

	// DeltaUsage carries token accounting. Appears at most once per stream,
	// typically as the last delta before the channel closes.
	DeltaUsage DeltaKind = "usage"

	// DeltaError terminates the stream abnormally. Text carries the
	// provider's error message; the channel is closed immediately after.
	// Not part of the §4.2 three-kind contract proper — it is how an
	// implementation surfaces a mid-stream failure without the caller
	// needing a second channel.
	DeltaError DeltaKind = "error"
)

// Delta is a single unit emitted by a streaming adapter call. Exactly one of
// Text or Usage is meaningful, selected by Kind.
type Delta struct {
	Kind  DeltaKind
	Text  string
	Usage puzzle.TokenUsage
}

// Request carries everything a streaming call needs.
type Request struct {
	Model           puzzle.ModelSpec
	Prompt          string
	MaxOutputTokens int

	// TimeoutMs, if non-zero, is advisory: adapters may use it to size an
	// internal HTTP timeout, but the attempt runner is the authority that
	// enforces it via ctx cancellation.
	TimeoutMs int
}

// StreamingAdapter is the capability every model provider implements.
//
// Errors returned from Stream itself (the second return value) mean the
// call never started — bad credentials, malformed request. A failure after
// the stream has started is surfaced as a final DeltaError instead; the
// channel is then closed. Implementations should recover whatever partial
// text a vendor error carries (§4.2) and emit it as ordinary text deltas
// before the DeltaError.
type StreamingAdapter interface {
	Stream(ctx context.Context, req Request) (<-chan Delta, error)
}
