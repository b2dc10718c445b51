// Package o11y wires the o11y provider from service configuration: honeycomb traces,
// statsd metrics and rollbar panic reporting.
package o11y

import (
	"context"
	"fmt"
	"os"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/rollbar/rollbar-go"

	"github.com/instanttexte/backend/config/secret"
	"github.com/instanttexte/backend/o11y"
	"github.com/instanttexte/backend/o11y/honeycomb"
)

type Config struct {
	Statsd            string
	RollbarToken      secret.String
	RollbarEnv        string
	RollbarServerRoot string
	HoneycombEnabled  bool
	HoneycombDataset  string
	HoneycombKey      secret.String
	SampleTraces      bool
	SampleKeyFunc     func(map[string]interface{}) string
	SampleRates       map[string]int
	Format            string
	Version           string
	Service           string
	StatsNamespace    string

	// Optional
	Mode                    string
	Debug                   bool
	RollbarDisabled         bool
	StatsdTelemetryDisabled bool
}

// Setup builds the provider described by o and returns a context carrying it, along
// with the cleanup that flushes and closes everything it opened.
func Setup(ctx context.Context, o Config) (context.Context, func(context.Context), error) {
	honeyConfig, err := honeyComb(o)
	if err != nil {
		return nil, nil, err
	}

	hostname, _ := os.Hostname()

	honeyConfig.Metrics, err = metrics(o, hostname)
	if err != nil {
		return nil, nil, err
	}

	provider := honeycomb.New(honeyConfig)
	provider.AddGlobalField("service", o.Service)
	provider.AddGlobalField("version", o.Version)
	if o.Mode != "" {
		provider.AddGlobalField("mode", o.Mode)
	}

	if o.RollbarToken != "" {
		client := rollbar.NewAsync(o.RollbarToken.Raw(), o.RollbarEnv, o.Version, hostname, o.RollbarServerRoot)
		client.SetEnabled(!o.RollbarDisabled)
		client.Message(rollbar.INFO, "Deployment")
		provider = rollBarHoneycombProvider{
			Provider:      provider,
			rollBarClient: client,
		}
	}

	return o11y.WithProvider(ctx, provider), provider.Close, nil
}

func metrics(o Config, hostname string) (o11y.ClosableMetricsProvider, error) {
	if o.Statsd == "" {
		return &statsd.NoOpClient{}, nil
	}

	tags := []string{
		"service:" + o.Service,
		"version:" + o.Version,
		"hostname:" + hostname,
	}
	if o.Mode != "" {
		tags = append(tags, "mode:"+o.Mode)
	}

	opts := []statsd.Option{
		statsd.WithNamespace(o.StatsNamespace),
		statsd.WithTags(tags),
	}
	if o.StatsdTelemetryDisabled {
		opts = append(opts, statsd.WithoutTelemetry())
	}

	stats, err := statsd.New(o.Statsd, opts...)
	if err != nil {
		return nil, fmt.Errorf("statsd: %w", err)
	}
	return stats, nil
}

type rollBarHoneycombProvider struct {
	o11y.Provider
	rollBarClient *rollbar.Client
}

func (p rollBarHoneycombProvider) Close(ctx context.Context) {
	p.Provider.Close(ctx)
	_ = p.rollBarClient.Close()
}

func (p rollBarHoneycombProvider) RollBarClient() *rollbar.Client {
	return p.rollBarClient
}

// DefaultSampleRates thins out successful health checks on the admin server.
var DefaultSampleRates = map[string]int{
	"admin /live 200":  1000,
	"admin /ready 200": 1000,
}

func honeyComb(o Config) (honeycomb.Config, error) {
	if o.SampleKeyFunc == nil {
		o.SampleKeyFunc = func(fields map[string]interface{}) string {
			// defaults for gin server
			return fmt.Sprintf("%s %s %v",
				fields["http.server_name"],
				fields["http.route"],
				fields["http.status_code"],
			)
		}
	}
	if o.SampleRates == nil {
		o.SampleRates = DefaultSampleRates
	}

	conf := honeycomb.Config{
		Dataset:       o.HoneycombDataset,
		Key:           o.HoneycombKey.Raw(),
		Format:        o.Format,
		SendTraces:    o.HoneycombEnabled,
		SampleTraces:  o.SampleTraces,
		SampleKeyFunc: o.SampleKeyFunc,
		SampleRates:   o.SampleRates,
		ServiceName:   o.Service,
		Debug:         o.Debug,
	}
	return conf, conf.Validate()
}
