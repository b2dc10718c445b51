// Package o11y is the tracing and metrics facade used across the backend.
//
// Code never talks to honeycomb or statsd directly. It pulls the Provider out of the
// context and works with spans:
//
//	ctx, span := o11y.StartSpan(ctx, "db: test_collection.insert")
//	defer o11y.End(span, &err)
package o11y

import (
	"context"

	"github.com/DataDog/datadog-go/statsd"
)

type Provider interface {
	// AddGlobalField sets a field on every event the process emits, such as service or version.
	AddGlobalField(key string, val interface{})

	// StartSpan opens a span as a child of the span in ctx, or as the root of a new trace
	// when ctx carries none. Callers must End the span.
	StartSpan(ctx context.Context, name string) (context.Context, Span)

	// GetSpan returns the span held by ctx, or nil.
	GetSpan(ctx context.Context) Span

	// AddField sets an "app." prefixed field on the span held by ctx.
	AddField(ctx context.Context, key string, val interface{})

	// AddFieldToTrace sets an "app." prefixed field on the root span, inherited by all
	// of its children.
	AddFieldToTrace(ctx context.Context, key string, val interface{})

	// Log emits a zero duration event.
	Log(ctx context.Context, name string, fields ...Pair)

	// Close flushes pending events and metrics.
	Close(ctx context.Context)

	MetricsProvider() MetricsProvider
}

type Span interface {
	// AddField sets an "app." prefixed field.
	AddField(key string, val interface{})

	// AddRawField sets a field as is. Reserved for plumbing fields like result,
	// http.status_code or db.system.
	AddRawField(key string, val interface{})

	// RecordMetric asks for a metric to be derived from the span's fields once it ends.
	RecordMetric(metric Metric)

	// End stamps the duration and hands the span to its provider. The span is unusable afterwards.
	End()
}

type providerKey struct{}

func WithProvider(ctx context.Context, p Provider) context.Context {
	return context.WithValue(ctx, providerKey{}, p)
}

// FromContext falls back to a provider that discards everything.
func FromContext(ctx context.Context) Provider {
	if p, ok := ctx.Value(providerKey{}).(Provider); ok {
		return p
	}
	return defaultProvider
}

func StartSpan(ctx context.Context, name string) (context.Context, Span) {
	return FromContext(ctx).StartSpan(ctx, name)
}

func AddField(ctx context.Context, key string, val interface{}) {
	FromContext(ctx).AddField(ctx, key, val)
}

func AddFieldToTrace(ctx context.Context, key string, val interface{}) {
	FromContext(ctx).AddFieldToTrace(ctx, key, val)
}

func Log(ctx context.Context, name string, fields ...Pair) {
	FromContext(ctx).Log(ctx, name, fields...)
}

// Pair is a named value attached to a log event.
type Pair struct {
	Key   string
	Value interface{}
}

func Field(key string, value interface{}) Pair {
	return Pair{Key: key, Value: value}
}

var defaultProvider Provider = noopProvider{}

type noopProvider struct{}

func (noopProvider) AddGlobalField(string, interface{}) {}

func (noopProvider) StartSpan(ctx context.Context, _ string) (context.Context, Span) {
	return ctx, noopSpan{}
}

func (noopProvider) GetSpan(context.Context) Span                         { return noopSpan{} }
func (noopProvider) AddField(context.Context, string, interface{})        {}
func (noopProvider) AddFieldToTrace(context.Context, string, interface{}) {}
func (noopProvider) Log(context.Context, string, ...Pair)                 {}
func (noopProvider) Close(context.Context)                                {}
func (noopProvider) MetricsProvider() MetricsProvider                     { return &statsd.NoOpClient{} }

type noopSpan struct{}

func (noopSpan) AddField(string, interface{})    {}
func (noopSpan) AddRawField(string, interface{}) {}
func (noopSpan) RecordMetric(Metric)             {}
func (noopSpan) End()                            {}
