package honeycomb

import (
	"fmt"
	"time"

	"github.com/instanttexte/backend/o11y"
)

// metricsField carries a span's recorded metrics until the send hook strips them.
const metricsField = "__span_metrics__"

// metricsHook derives the recorded statsd metrics from a finished span's fields and
// removes them so they never reach the event sinks.
func metricsHook(mp o11y.MetricsProvider) func(map[string]interface{}) {
	return func(fields map[string]interface{}) {
		metrics, _ := fields[metricsField].([]o11y.Metric)
		delete(fields, metricsField)
		if mp == nil {
			return
		}

		if _, failed := fields["error"]; failed {
			_ = mp.Count("error", 1, []string{"type:o11y"}, 1)
		}
		for _, m := range metrics {
			emit(mp, m, fields)
		}
	}
}

func emit(mp o11y.MetricsProvider, m o11y.Metric, fields map[string]interface{}) {
	tags := make([]string, 0, len(m.TagFields))
	for _, name := range m.TagFields {
		if v, ok := lookup(fields, name); ok {
			tags = append(tags, fmt.Sprintf("%s:%v", name, v))
		}
	}

	if m.Type == o11y.MetricCount && m.Field == "" {
		_ = mp.Count(m.Name, 1, tags, 1)
		return
	}

	v, ok := lookup(fields, m.Field)
	if !ok {
		return
	}
	n, ok := number(v)
	if !ok {
		panic(fmt.Sprintf("span field %q holds %T, not a number", m.Field, v))
	}

	switch m.Type {
	case o11y.MetricTimer:
		_ = mp.TimeInMilliseconds(m.Name, n, tags, 1)
	case o11y.MetricCount:
		_ = mp.Count(m.Name, int64(n), tags, 1)
	}
}

// lookup also tries the "app." prefix that AddField applies.
func lookup(fields map[string]interface{}, name string) (interface{}, bool) {
	if v, ok := fields[name]; ok {
		return v, true
	}
	v, ok := fields["app."+name]
	return v, ok
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case time.Duration:
		return float64(n.Milliseconds()), true
	}
	return 0, false
}
