package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"
	"gotest.tools/v3/poll"

	"github.com/instanttexte/backend/internal/syncbuffer"
	"github.com/instanttexte/backend/o11y"
	"github.com/instanttexte/backend/o11y/honeycomb"
	"github.com/instanttexte/backend/testing/fakemetrics"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name      string
		result    error
		wantWaits int
		wantNext  int
		wantReset int
	}{
		{
			name:      "no work backs off",
			result:    ErrShouldBackoff,
			wantWaits: 4,
			wantNext:  4,
			wantReset: 1,
		},
		{
			name:      "work done loops immediately",
			wantReset: 5,
		},
		{
			name:      "failures loop immediately",
			result:    errors.New("no reachable servers"),
			wantReset: 5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			calls := 0
			waits := 0
			b := &fakeBackOff{next: time.Hour}
			Run(ctx, Config{
				Name:          "test",
				NoWorkBackOff: b,
				WorkFunc: func(ctx context.Context) error {
					calls++
					if calls == 4 {
						cancel()
					}
					return tt.result
				},
				waiter: func(_ context.Context, d time.Duration) {
					assert.Check(t, cmp.Equal(d, time.Hour))
					waits++
				},
			})

			assert.Check(t, cmp.Equal(calls, 4))
			assert.Check(t, cmp.Equal(waits, tt.wantWaits))
			assert.Check(t, cmp.Equal(b.nextCalls, tt.wantNext))
			assert.Check(t, cmp.Equal(b.resetCalls, tt.wantReset))
		})
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var calls int64
	done := make(chan struct{})
	go func() {
		defer close(done)
		Run(ctx, Config{
			Name: "gauges",
			WorkFunc: func(ctx context.Context) error {
				atomic.AddInt64(&calls, 1)
				time.Sleep(time.Millisecond)
				return nil
			},
		})
	}()

	poll.WaitOn(t, func(poll.LogT) poll.Result {
		if atomic.LoadInt64(&calls) > 1 {
			return poll.Success()
		}
		return poll.Continue("only %d calls", atomic.LoadInt64(&calls))
	})
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestRun_WaitsOnRealBackOff(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	var calls int64
	Run(ctx, Config{
		NoWorkBackOff: backoff.NewConstantBackOff(100 * time.Millisecond),
		WorkFunc: func(ctx context.Context) error {
			atomic.AddInt64(&calls, 1)
			return ErrShouldBackoff
		},
	})

	n := atomic.LoadInt64(&calls)
	assert.Check(t, n >= 2 && n <= 4, "got %d calls", n)
}

func TestDoWork_RecoversPanic(t *testing.T) {
	cfg := setDefaults(Config{
		WorkFunc: func(ctx context.Context) error {
			var m map[string]int
			m["boom"]++
			return nil
		},
	})
	assert.Check(t, doWork(o11y.FromContext(context.Background()), cfg) < 0)
}

func TestDoWork_DefaultsMaxWorkTime(t *testing.T) {
	cfg := setDefaults(Config{
		WorkFunc: func(ctx context.Context) error {
			deadline, ok := ctx.Deadline()
			assert.Check(t, ok)
			assert.Check(t, time.Until(deadline) > time.Second)
			return nil
		},
	})
	assert.Check(t, cmp.Equal(cfg.MaxWorkTime, defaultMaxWorkTime))
	assert.Check(t, doWork(o11y.FromContext(context.Background()), cfg) < 0)
}

func TestDoWork_RecordsLoopMetric(t *testing.T) {
	metrics := &fakemetrics.Provider{}
	provider := honeycomb.New(honeycomb.Config{
		Format:  "json",
		Writer:  &syncbuffer.SyncBuffer{},
		Metrics: metrics,
	})

	cfg := setDefaults(Config{
		Name:          "metric-loop",
		NoWorkBackOff: &fakeBackOff{next: 10 * time.Second},
		WorkFunc: func(ctx context.Context) error {
			return ErrShouldBackoff
		},
	})

	assert.Check(t, cmp.Equal(doWork(provider, cfg), 10*time.Second))

	calls := metrics.Named("worker_loop")
	assert.Assert(t, cmp.Len(calls, 1))
	assert.Check(t, cmp.DeepEqual(calls[0].Tags, []string{"loop_name:metric-loop", "result:success"}))
}

type fakeBackOff struct {
	next       time.Duration
	nextCalls  int
	resetCalls int
}

func (b *fakeBackOff) NextBackOff() time.Duration {
	b.nextCalls++
	return b.next
}

func (b *fakeBackOff) Reset() {
	b.resetCalls++
}
