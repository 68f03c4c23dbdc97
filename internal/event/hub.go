package event

import "sync"

// Hub is a single-session event channel. The race engine's goroutines
// publish; one goroutine (the transport) drains. Events from one goroutine
// keep their order; events from concurrent publishers interleave in the
// order they are sent. A Hub is single-use: it closes once a terminal event
// is sent or Close is called.
type Hub struct {
	out    chan Event
	once   sync.Once
	suffix suffixTracker
}

// NewHub creates a Hub with the given output buffer depth.
func NewHub(buf int) *Hub {
	return &Hub{out: make(chan Event, buf)}
}

// Events returns the read side of the stream. The channel closes after a
// terminal event (complete or error) is published, or after Close.
func (h *Hub) Events() <-chan Event {
	return h.out
}

// Publish sends ev to the stream and may be called from several goroutines
// at once. It blocks while the buffer is full, so a receiver that has
// stopped draining stalls the publishing goroutine.
//
// Reasoning-delta events are rewritten in place so Delta carries only the
// suffix since the previous chunk for the same (model_id, guess_index)
// pair, per the transport's diffing contract.
func (h *Hub) Publish(ev Event) {
	if ev.Kind == KindReasoningDelta && ev.ReasoningDelta != nil {
		ev.ReasoningDelta.Delta = h.suffix.diff(ev.ReasoningDelta.ModelID, ev.ReasoningDelta.GuessIndex, ev.ReasoningDelta.Delta)
	}
	h.out <- ev
	if ev.Kind.Terminal() {
		h.closeOnce()
	}
}

// Close closes the stream without publishing a terminal event. Used when a
// session is torn down before the engine reaches a natural conclusion (e.g.
// the client disconnected and end_early was never called).
func (h *Hub) Close() {
	h.closeOnce()
}

func (h *Hub) closeOnce() {
	h.once.Do(func() { close(h.out) })
}

// suffixTracker remembers the full accumulated reasoning text seen so far
// for each (model_id, guess_index) pair and reduces each new full chunk to
// the suffix not yet sent.
//
// Adapters report whole reasoning chunks (the current full text so far, in
// the conventions used by several vendor streaming APIs), not increments;
// the transport contract in §4.7 requires sending only the new suffix, so
// the diffing happens once, here, rather than in every adapter.
type suffixTracker struct {
	mu   sync.Mutex
	seen map[suffixKey]string
}

type suffixKey struct {
	modelID    string
	guessIndex int
}

func (t *suffixTracker) diff(modelID string, guessIndex int, full string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.seen == nil {
		t.seen = make(map[suffixKey]string)
	}
	key := suffixKey{modelID, guessIndex}
	prev := t.seen[key]
	t.seen[key] = full

	if len(full) >= len(prev) && full[:len(prev)] == prev {
		return full[len(prev):]
	}
	// full is shorter than, or diverges from, what we've already sent (a new
	// turn reusing guess_index 0, or an adapter that resets its buffer) —
	// treat the whole chunk as new.
	return full
}
