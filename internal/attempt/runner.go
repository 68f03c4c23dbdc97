// Package attempt implements the Attempt Runner (C4): it drives one
// (model, prompt) pair through a single adapter invocation, enforcing a
// timeout, recovering partial output, and always producing a fully
// populated puzzle.Attempt — the runner itself never returns an error.
package attempt

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/MrWong99/wordrace/internal/adapter"
	"github.com/MrWong99/wordrace/internal/observe"
	"github.com/MrWong99/wordrace/internal/puzzle"
)

// Listener receives progress updates while an attempt is in flight.
// Implementations must not block; the runner does not buffer on their
// behalf.
type Listener interface {
	OnReasoningDelta(text string)
	OnTextDelta(text string)
}

// NoopListener discards every update.
type NoopListener struct{}

func (NoopListener) OnReasoningDelta(string) {}
func (NoopListener) OnTextDelta(string)      {}

// Spec is everything the runner needs about the clue or guess being
// attempted, independent of which race mode produced it.
type Spec struct {
	RaceID          string
	RoundID         string
	ClueID          string
	Model           puzzle.ModelSpec
	Prompt          string
	MaxOutputTokens int
	TimeoutMs       int
	OutputRule      puzzle.OutputRule
	CaseRule        puzzle.CaseRule
	AllowHyphen     bool
	DeclaredLength  int
	CanonicalAnswer string
}

// Run drives spec.Model through adp with spec.Prompt and returns a fully
// populated Attempt. It never returns an error; all failure modes are
// captured in the returned Attempt's Error field.
func Run(ctx context.Context, adp adapter.StreamingAdapter, spec Spec, listener Listener) *puzzle.Attempt {
	if listener == nil {
		listener = NoopListener{}
	}

	ctx, span := observe.StartSpan(ctx, "attempt.run",
		attribute.String("model_id", spec.Model.ID),
		attribute.String("clue_id", spec.ClueID),
	)
	defer span.End()

	a := &puzzle.Attempt{
		RaceID:  spec.RaceID,
		RoundID: spec.RoundID,
		ClueID:  spec.ClueID,
		ModelID: spec.Model.ID,
	}

	tRequest := time.Now()
	a.TRequest = tRequest

	runCtx := ctx
	var cancel context.CancelFunc
	if spec.TimeoutMs > 0 {
		runCtx, cancel = context.WithTimeout(ctx, time.Duration(spec.TimeoutMs)*time.Millisecond)
		defer cancel()
	}

	req := adapter.Request{
		Model:           spec.Model,
		Prompt:          spec.Prompt,
		MaxOutputTokens: spec.MaxOutputTokens,
		TimeoutMs:       spec.TimeoutMs,
	}

	deltas, err := adp.Stream(runCtx, req)
	if err != nil {
		finish(a, tRequest, "", nil, classify(runCtx, err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return finalize(a, spec)
	}

	var text strings.Builder
	var tFirst *time.Time
	var usage *puzzle.TokenUsage
	var streamErr error

drain:
	for {
		select {
		case d, ok := <-deltas:
			if !ok {
				if runCtx.Err() != nil {
					streamErr = runCtx.Err()
				}
				break drain
			}
			switch d.Kind {
			case adapter.DeltaReasoning:
				listener.OnReasoningDelta(d.Text)
			case adapter.DeltaText:
				if tFirst == nil {
					now := time.Now()
					tFirst = &now
				}
				text.WriteString(d.Text)
				listener.OnTextDelta(d.Text)
			case adapter.DeltaUsage:
				u := d.Usage
				usage = &u
			case adapter.DeltaError:
				streamErr = &adapterError{msg: d.Text}
			}
		case <-runCtx.Done():
			streamErr = runCtx.Err()
			break drain
		}
	}

	finish(a, tRequest, text.String(), tFirst, classify(runCtx, streamErr))
	a.TokenUsage = usage

	if streamErr != nil {
		span.RecordError(streamErr)
		span.SetStatus(codes.Error, streamErr.Error())
	}

	return finalize(a, spec)
}

// finish fills in the timing fields and, when kind is non-empty, the error
// field. It does not run normalization — that happens in finalize once the
// caller knows whether an error occurred.
func finish(a *puzzle.Attempt, tRequest time.Time, output string, tFirst *time.Time, kind puzzle.ErrorKind) {
	now := time.Now()
	a.TLast = now
	a.E2EMs = now.Sub(tRequest).Milliseconds()
	a.TFirst = tFirst
	if tFirst != nil {
		ttft := tFirst.Sub(tRequest).Milliseconds()
		a.TTFTMs = &ttft
	}
	a.Output = output
	if kind != "" {
		a.Error = &puzzle.AttemptError{Kind: kind, Message: errorMessage(kind)}
	}
}

// finalize runs C1 normalization and validation against spec and returns a.
// Per the runner's error-to-state mapping, a failed attempt is never marked
// correct or format_ok regardless of what normalization would have said.
func finalize(a *puzzle.Attempt, spec Spec) *puzzle.Attempt {
	if a.Error != nil {
		a.FormatOK = false
		a.Correct = false
		return a
	}

	normalized, extractedOK := puzzle.Normalize(a.Output, spec.OutputRule, spec.CaseRule, spec.AllowHyphen)
	a.Normalized = normalized
	a.FormatOK = puzzle.FormatOK(normalized, extractedOK, spec.DeclaredLength)
	if a.FormatOK && spec.CanonicalAnswer != "" {
		a.Correct = puzzle.IsCorrect(normalized, spec.CanonicalAnswer, spec.CaseRule)
	}
	return a
}

// classify maps a Stream error (or nil) to an ErrorKind per the runner's
// error-to-state mapping. A context deadline or cancellation always reports
// as timeout or cancelled respectively, even if the underlying error is
// something else, since runCtx's own expiry is what actually stopped the
// stream.
func classify(ctx context.Context, err error) puzzle.ErrorKind {
	if err == nil {
		return ""
	}
	if ctx.Err() == context.DeadlineExceeded {
		return puzzle.ErrorTimeout
	}
	if ctx.Err() == context.Canceled {
		return puzzle.ErrorCancelled
	}
	return puzzle.ErrorAdapterFailure
}

func errorMessage(kind puzzle.ErrorKind) string {
	switch kind {
	case puzzle.ErrorTimeout:
		return "attempt timed out"
	case puzzle.ErrorCancelled:
		return "attempt cancelled"
	default:
		return "adapter failed to complete the attempt"
	}
}

type adapterError struct{ msg string }

func (e *adapterError) Error() string { return e.msg }
