// Package honeycomb is the o11y provider built on the honeycomb beeline. Every span is
// written to a local sink (stderr by default) and, when enabled, shipped to honeycomb.
package honeycomb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/honeycombio/beeline-go"
	"github.com/honeycombio/beeline-go/client"
	"github.com/honeycombio/beeline-go/trace"
	"github.com/honeycombio/dynsampler-go"
	"github.com/honeycombio/libhoney-go"
	"github.com/honeycombio/libhoney-go/transmission"

	"github.com/instanttexte/backend/o11y"
)

type Config struct {
	Host    string
	Dataset string
	Key     string
	// Format of the local sink: json (default), text, colour or none.
	Format string
	Writer io.Writer

	// SendTraces ships events to honeycomb as well as the local sink.
	SendTraces bool
	// Sender replaces the honeycomb transmission, mostly for tests.
	Sender transmission.Sender

	SampleTraces  bool
	SampleKeyFunc func(map[string]interface{}) string
	SampleRates   map[string]int

	Metrics     o11y.ClosableMetricsProvider
	ServiceName string
	Debug       bool
}

func (c *Config) Validate() error {
	if c.SendTraces && c.Key == "" && c.Sender == nil {
		return errors.New("honeycomb_key key required for honeycomb")
	}
	return nil
}

func (c *Config) sender() transmission.Sender {
	w := c.Writer
	if w == nil {
		w = os.Stderr
	}

	ms := &MultiSender{}
	if c.SendTraces {
		remote := c.Sender
		if remote == nil {
			remote = &transmission.Honeycomb{
				MaxBatchSize:         libhoney.DefaultMaxBatchSize,
				BatchTimeout:         libhoney.DefaultBatchTimeout,
				MaxConcurrentBatches: libhoney.DefaultMaxConcurrentBatches,
				PendingWorkCapacity:  libhoney.DefaultPendingWorkCapacity,
				UserAgentAddition:    c.ServiceName,
			}
		}
		ms.Senders = append(ms.Senders, remote)
	}

	switch c.Format {
	case "none":
	case "text":
		ms.Senders = append(ms.Senders, &TextSender{w: w})
	case "colour", "color":
		ms.Senders = append(ms.Senders, &TextSender{w: w, colour: true})
	default:
		ms.Senders = append(ms.Senders, &transmission.WriterSender{W: w})
	}
	return ms
}

type honeycomb struct {
	metrics o11y.ClosableMetricsProvider
}

// New initialises the global beeline, so only one provider should be live at a time.
func New(conf Config) o11y.Provider {
	// beeline's own constructor drops this error too
	lc, _ := libhoney.NewClient(libhoney.ClientConfig{
		APIKey:       conf.Key,
		Dataset:      conf.Dataset,
		APIHost:      conf.Host,
		Transmission: conf.sender(),
	})

	bc := beeline.Config{
		Client:      lc,
		Debug:       conf.Debug,
		WriteKey:    conf.Key,
		ServiceName: conf.ServiceName,
	}

	sendMetrics := metricsHook(conf.Metrics)

	if conf.SampleTraces {
		sampler := &TraceSampler{
			KeyFunc: conf.SampleKeyFunc,
			Sampler: &dynsampler.Static{Default: 1, Rates: conf.SampleRates},
		}
		// sampled out spans skip the PresendHook, so metrics are taken here
		bc.SamplerHook = func(fields map[string]interface{}) (bool, int) {
			sendMetrics(fields)
			return sampler.Hook(fields)
		}
	} else {
		bc.PresendHook = sendMetrics
	}

	beeline.Init(bc)
	return &honeycomb{metrics: conf.Metrics}
}

func (h *honeycomb) AddGlobalField(key string, val interface{}) {
	mustValidateKey(key)
	client.AddField(key, val)
}

func (h *honeycomb) StartSpan(ctx context.Context, name string) (context.Context, o11y.Span) {
	var s *trace.Span
	if parent := trace.GetSpanFromContext(ctx); parent != nil {
		ctx, s = parent.CreateAsyncChild(ctx)
	} else {
		// the root span of a fresh trace
		ctx, _ = trace.NewTrace(ctx, nil)
		s = trace.GetSpanFromContext(ctx)
	}
	s.AddField("name", name)
	return ctx, WrapSpan(s)
}

func (h *honeycomb) GetSpan(ctx context.Context) o11y.Span {
	return WrapSpan(trace.GetSpanFromContext(ctx))
}

func (h *honeycomb) AddField(ctx context.Context, key string, val interface{}) {
	mustValidateKey(key)
	beeline.AddField(ctx, key, val)
}

func (h *honeycomb) AddFieldToTrace(ctx context.Context, key string, val interface{}) {
	mustValidateKey(key)
	beeline.AddFieldToTrace(ctx, key, val)
}

func (h *honeycomb) Log(ctx context.Context, name string, fields ...o11y.Pair) {
	_, s := h.StartSpan(ctx, name)
	for _, f := range fields {
		s.AddField(f.Key, f.Value)
	}
	s.End()
}

func (h *honeycomb) Close(context.Context) {
	beeline.Close()
	if h.metrics != nil {
		_ = h.metrics.Close()
	}
}

func (h *honeycomb) MetricsProvider() o11y.MetricsProvider {
	return h.metrics
}

// WrapSpan returns nil for a nil span.
func WrapSpan(s *trace.Span) o11y.Span {
	if s == nil {
		return nil
	}
	return &span{span: s}
}

type span struct {
	span    *trace.Span
	metrics []o11y.Metric
}

func (s *span) AddField(key string, val interface{}) {
	s.AddRawField("app."+key, val)
}

func (s *span) AddRawField(key string, val interface{}) {
	mustValidateKey(key)
	if err, ok := val.(error); ok {
		val = err.Error()
	}
	s.span.AddField(key, val)
}

func (s *span) RecordMetric(m o11y.Metric) {
	s.metrics = append(s.metrics, m)
	s.span.AddField(metricsField, s.metrics)
}

func (s *span) End() {
	s.span.Send()
}

// mustValidateKey panics on dashes, which statsd tags and honeycomb queries handle badly.
func mustValidateKey(key string) {
	if strings.Contains(key, "-") {
		panic(fmt.Errorf("key %q cannot contain '-'", key))
	}
}
