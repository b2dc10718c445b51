package system

import (
	"context"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/instanttexte/backend/o11y"
	"github.com/instanttexte/backend/worker"
)

// MetricProducer is polled for gauges every metricsInterval.
type MetricProducer interface {
	// MetricName prefixes each gauge, which is sent as gauge.<name>.<key>.
	MetricName() string
	Gauges(context.Context) map[string]float64
}

var metricsInterval = 10 * time.Second

func publishGauges(ctx context.Context, mp o11y.MetricsProvider, producers []MetricProducer) {
	if mp == nil {
		return
	}
	for _, p := range producers {
		prefix := "gauge." + strings.ReplaceAll(p.MetricName(), "-", "_") + "."
		for key, v := range p.Gauges(ctx) {
			_ = mp.Gauge(prefix+key, v, nil, 1)
		}
	}
}

// metricsReporter returns an errgroup func running the gauge loop until ctx is done.
func metricsReporter(ctx context.Context, producers []MetricProducer) func() error {
	mp := o11y.FromContext(ctx).MetricsProvider()
	return func() error {
		worker.Run(ctx, worker.Config{
			Name:          "metric-loop",
			MaxWorkTime:   time.Second,
			NoWorkBackOff: backoff.NewConstantBackOff(metricsInterval),
			WorkFunc: func(ctx context.Context) error {
				publishGauges(ctx, mp, producers)
				return worker.ErrShouldBackoff
			},
		})
		return nil
	}
}
