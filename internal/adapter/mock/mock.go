// Package mock provides a test double for the adapter.StreamingAdapter
// interface.
package mock

import (
	"context"
	"sync"

	"github.com/MrWong99/wordrace/internal/adapter"
)

// StreamCall records a single invocation of Stream.
type StreamCall struct {
	Ctx context.Context
	Req adapter.Request
}

// Adapter is a configurable test double for adapter.StreamingAdapter.
//
// Set Deltas to the sequence a call should emit; set StartErr to make
// Stream fail before any channel is returned. A non-zero SendDelay
// simulates inter-delta latency, useful for exercising timeout and
// cancellation paths.
type Adapter struct {
	mu sync.Mutex

	// Deltas is the sequence of Delta values sent on the channel returned by
	// Stream, in order. All are sent before the channel is closed unless ctx
	// is cancelled first.
	Deltas []adapter.Delta

	// StartErr, if non-nil, is returned instead of starting a stream.
	StartErr error

	// SendDelay, if non-zero, is waited before sending each delta — or
	// until ctx is done, whichever comes first.
	SendDelay func(i int) <-chan struct{}

	// Calls records every invocation of Stream in order.
	Calls []StreamCall
}

// Stream records the call and returns a channel emitting Deltas.
func (a *Adapter) Stream(ctx context.Context, req adapter.Request) (<-chan adapter.Delta, error) {
	a.mu.Lock()
	a.Calls = append(a.Calls, StreamCall{Ctx: ctx, Req: req})
	if a.StartErr != nil {
		err := a.StartErr
		a.mu.Unlock()
		return nil, err
	}
	deltas := append([]adapter.Delta(nil), a.Deltas...)
	delay := a.SendDelay
	a.mu.Unlock()

	ch := make(chan adapter.Delta, len(deltas))
	go func() {
		defer close(ch)
		for i, d := range deltas {
			if delay != nil {
				select {
				case <-delay(i):
				case <-ctx.Done():
					return
				}
			}
			select {
			case ch <- d:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

// Reset clears recorded calls. Thread-safe.
func (a *Adapter) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Calls = nil
}

var _ adapter.StreamingAdapter = (*Adapter)(nil)
