package resilience

import (
	"context"
	"errors"

	"github.com/MrWong99/wordrace/internal/adapter"
)

// AdapterBreaker wraps a [adapter.StreamingAdapter] with a dedicated
// [CircuitBreaker], so that a model repeatedly failing across clues is
// skipped, rather than retried against a dead endpoint, until the breaker's
// reset timeout lets a probe call through. The breaker trips on both a failed Stream start and a mid-stream
// DeltaError — either counts as one consecutive failure.
type AdapterBreaker struct {
	underlying adapter.StreamingAdapter
	breaker    *CircuitBreaker
}

// NewAdapterBreaker wraps underlying with a breaker configured per cfg. cfg
// is typically built with Name set to the model ID so log lines and metrics
// can be attributed to the right model.
func NewAdapterBreaker(underlying adapter.StreamingAdapter, cfg CircuitBreakerConfig) *AdapterBreaker {
	return &AdapterBreaker{underlying: underlying, breaker: NewCircuitBreaker(cfg)}
}

// Stream implements adapter.StreamingAdapter. When the breaker is open,
// Stream returns [ErrCircuitOpen] immediately without touching the
// underlying adapter.
func (b *AdapterBreaker) Stream(ctx context.Context, req adapter.Request) (<-chan adapter.Delta, error) {
	startErr := make(chan error, 1)
	out := make(chan adapter.Delta, 32)

	go func() {
		defer close(out)
		attempted := false
		execErr := b.breaker.Execute(func() error {
			attempted = true
			ch, err := b.underlying.Stream(ctx, req)
			if err != nil {
				startErr <- err
				return err
			}
			startErr <- nil

			var streamErr error
			for d := range ch {
				if d.Kind == adapter.DeltaError {
					streamErr = errors.New(d.Text)
				}
				select {
				case out <- d:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return streamErr
		})
		if !attempted {
			// Breaker rejected the call outright (open or half-open budget
			// exhausted); fn above never ran, so startErr was never sent to.
			startErr <- execErr
		}
	}()

	if err := <-startErr; err != nil {
		return nil, err
	}
	return out, nil
}

// State returns the breaker's current [State], useful for surfacing
// per-model health in progress events.
func (b *AdapterBreaker) State() State {
	return b.breaker.State()
}

var _ adapter.StreamingAdapter = (*AdapterBreaker)(nil)
