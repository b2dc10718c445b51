package o11y

import "io"

type MetricType string

const (
	MetricTimer MetricType = "timer"
	MetricCount MetricType = "count"
)

// Metric describes a statsd metric built from a span's fields when the span is sent.
type Metric struct {
	Type MetricType
	Name string
	// Field holds the metric value. Counts without a Field count 1.
	Field string
	// TagFields are span fields turned into name:value tags.
	TagFields []string
}

// Timing records the span duration.
func Timing(name string, tagFields ...string) Metric {
	return Metric{Type: MetricTimer, Name: name, Field: "duration_ms", TagFields: tagFields}
}

func Incr(name string, tagFields ...string) Metric {
	return Metric{Type: MetricCount, Name: name, TagFields: tagFields}
}

// MetricsProvider is the subset of the statsd client the backend uses.
type MetricsProvider interface {
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
}

type ClosableMetricsProvider interface {
	MetricsProvider
	io.Closer
}
