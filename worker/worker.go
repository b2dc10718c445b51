package worker

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/instanttexte/backend/o11y"
)

// ErrShouldBackoff is returned by a WorkFunc that found nothing to do.
var ErrShouldBackoff = errors.New("should back off")

const defaultMaxWorkTime = 10 * time.Second

type Config struct {
	Name string
	// NoWorkBackOff paces the loop after ErrShouldBackoff. Defaults to an exponential
	// back-off between 50ms and 5s.
	NoWorkBackOff backoff.BackOff
	// MaxWorkTime bounds a single call to WorkFunc, defaults to 10s.
	MaxWorkTime time.Duration
	WorkFunc    func(ctx context.Context) error

	waiter func(ctx context.Context, delay time.Duration)
}

// Run calls WorkFunc in a loop until ctx is cancelled. Any result other than
// ErrShouldBackoff, panics included, runs the next iteration immediately.
func Run(ctx context.Context, cfg Config) {
	cfg = setDefaults(cfg)
	cfg.NoWorkBackOff.Reset()
	provider := o11y.FromContext(ctx)

	for ctx.Err() == nil {
		delay := doWork(provider, cfg)
		if delay < 0 {
			cfg.NoWorkBackOff.Reset()
			continue
		}
		cfg.waiter(ctx, delay)
	}
}

func setDefaults(cfg Config) Config {
	if cfg.waiter == nil {
		cfg.waiter = sleep
	}
	if cfg.NoWorkBackOff == nil {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = 50 * time.Millisecond
		b.MaxInterval = 5 * time.Second
		b.MaxElapsedTime = 0
		cfg.NoWorkBackOff = b
	}
	if cfg.MaxWorkTime <= 0 {
		cfg.MaxWorkTime = defaultMaxWorkTime
	}
	return cfg
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// doWork runs one iteration and returns how long to wait before the next, negative for
// no wait. The iteration gets a fresh context so it can finish after the loop is cancelled.
func doWork(provider o11y.Provider, cfg Config) (delay time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.MaxWorkTime)
	defer cancel()

	ctx = o11y.WithProvider(ctx, provider)
	ctx, span := provider.StartSpan(ctx, "worker loop: "+cfg.Name)
	span.AddRawField("loop_name", cfg.Name)
	span.RecordMetric(o11y.Timing("worker_loop", "loop_name", "result"))

	var err error
	defer o11y.End(span, &err)
	defer func() {
		if r := recover(); r != nil {
			err = o11y.HandlePanic(ctx, span, r, nil)
			delay = -1
		}
	}()

	delay = -1
	err = cfg.WorkFunc(ctx)
	if errors.Is(err, ErrShouldBackoff) {
		err = nil
		delay = cfg.NoWorkBackOff.NextBackOff()
	}
	span.AddField("backoff_ms", delay.Milliseconds())
	return delay
}
