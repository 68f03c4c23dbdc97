// Package observe provides application-wide observability primitives for
// wordrace: OpenTelemetry metrics, distributed tracing, structured logging,
// and HTTP middleware that ties them together.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can still be
// scraped via the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all wordrace metrics.
const meterName = "github.com/MrWong99/wordrace"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// --- Latency histograms ---

	// AttemptDuration tracks one model's end-to-end latency for a single
	// clue or guess. Use with attributes:
	//   attribute.String("model_id", ...), attribute.String("status", ...)
	AttemptDuration metric.Float64Histogram

	// TimeToFirstToken tracks the time from request to the first text delta.
	// Use with attribute.String("model_id", ...).
	TimeToFirstToken metric.Float64Histogram

	// ClueScore tracks the per-attempt 0-100 score computed by the C1
	// scorer. Use with attribute.String("model_id", ...).
	ClueScore metric.Float64Histogram

	// --- Counters ---

	// AttemptsTotal counts every Attempt the runner produces. Use with
	// attributes:
	//   attribute.String("model_id", ...), attribute.String("status", ...)
	// where status is one of "correct", "incorrect", "timeout",
	// "adapter_failure", "cancelled".
	AttemptsTotal metric.Int64Counter

	// TokensTotal counts tokens consumed, split by kind. Use with
	// attributes:
	//   attribute.String("model_id", ...), attribute.String("kind", ...)
	// where kind is "prompt", "completion", or "total".
	TokensTotal metric.Int64Counter

	// GuessesTotal counts Wordle guesses submitted. Use with attributes:
	//   attribute.String("model_id", ...), attribute.String("result", ...)
	// where result is "solved", "continuing", or "failed".
	GuessesTotal metric.Int64Counter

	// --- Error counters ---

	// AdapterErrors counts adapter-layer failures. Use with attributes:
	//   attribute.String("model_id", ...), attribute.String("kind", ...)
	AdapterErrors metric.Int64Counter

	// --- Gauges ---

	// ActiveRaces tracks the number of currently running races (both modes).
	ActiveRaces metric.Int64UpDownCounter

	// --- HTTP middleware ---

	// HTTPRequestDuration tracks HTTP request processing time. Use with attributes:
	//   attribute.String("method", ...), attribute.String("path", ...)
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets defines histogram bucket boundaries (in seconds) spanning
// the sub-second model round-trips this service measures.
var latencyBuckets = []float64{
	0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 15, 30,
}

// scoreBuckets defines histogram bucket boundaries for the 0-100 clue score.
var scoreBuckets = []float64{
	0, 10, 25, 40, 55, 70, 80, 90, 95, 98, 100,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	// Histograms.
	if met.AttemptDuration, err = m.Float64Histogram("wordrace.attempt.duration",
		metric.WithDescription("End-to-end latency of one model attempt."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.TimeToFirstToken, err = m.Float64Histogram("wordrace.attempt.ttft",
		metric.WithDescription("Time to first text delta for one model attempt."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.ClueScore, err = m.Float64Histogram("wordrace.clue.score",
		metric.WithDescription("Per-attempt clue score, 0-100."),
		metric.WithExplicitBucketBoundaries(scoreBuckets...),
	); err != nil {
		return nil, err
	}

	// Counters.
	if met.AttemptsTotal, err = m.Int64Counter("wordrace.attempts.total",
		metric.WithDescription("Total attempts by model and status."),
	); err != nil {
		return nil, err
	}
	if met.TokensTotal, err = m.Int64Counter("wordrace.tokens.total",
		metric.WithDescription("Total tokens consumed by model and kind."),
	); err != nil {
		return nil, err
	}
	if met.GuessesTotal, err = m.Int64Counter("wordrace.guesses.total",
		metric.WithDescription("Total Wordle guesses by model and result."),
	); err != nil {
		return nil, err
	}

	// Error counters.
	if met.AdapterErrors, err = m.Int64Counter("wordrace.adapter.errors",
		metric.WithDescription("Total adapter failures by model and error kind."),
	); err != nil {
		return nil, err
	}

	// Gauges (UpDownCounters).
	if met.ActiveRaces, err = m.Int64UpDownCounter("wordrace.active_races",
		metric.WithDescription("Number of currently running races."),
	); err != nil {
		return nil, err
	}

	// HTTP middleware histogram.
	if met.HTTPRequestDuration, err = m.Float64Histogram("wordrace.http.request.duration",
		metric.WithDescription("HTTP request latency by method and path."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Attr is a convenience alias for [attribute.String] to reduce verbosity at
// call sites.
func Attr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

// RecordAttempt is a convenience method that records an attempt's duration
// and status counter with the standard attribute set.
func (m *Metrics) RecordAttempt(ctx context.Context, modelID, status string, durationSeconds float64) {
	attrs := metric.WithAttributes(
		attribute.String("model_id", modelID),
		attribute.String("status", status),
	)
	m.AttemptDuration.Record(ctx, durationSeconds, attrs)
	m.AttemptsTotal.Add(ctx, 1, attrs)
}

// RecordTokens is a convenience method that records prompt/completion/total
// token counts for one attempt.
func (m *Metrics) RecordTokens(ctx context.Context, modelID string, prompt, completion, total int) {
	m.TokensTotal.Add(ctx, int64(prompt), metric.WithAttributes(attribute.String("model_id", modelID), attribute.String("kind", "prompt")))
	m.TokensTotal.Add(ctx, int64(completion), metric.WithAttributes(attribute.String("model_id", modelID), attribute.String("kind", "completion")))
	m.TokensTotal.Add(ctx, int64(total), metric.WithAttributes(attribute.String("model_id", modelID), attribute.String("kind", "total")))
}

// RecordGuess is a convenience method that records a Wordle guess counter
// increment.
func (m *Metrics) RecordGuess(ctx context.Context, modelID, result string) {
	m.GuessesTotal.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("model_id", modelID),
			attribute.String("result", result),
		),
	)
}

// RecordAdapterError is a convenience method that records an adapter error
// counter increment.
func (m *Metrics) RecordAdapterError(ctx context.Context, modelID, kind string) {
	m.AdapterErrors.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("model_id", modelID),
			attribute.String("kind", kind),
		),
	)
}
