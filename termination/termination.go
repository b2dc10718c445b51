// Package termination turns process signals into a shutdown error for the system run group.
package termination

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/instanttexte/backend/o11y"
)

var ErrTerminated = errors.New("terminated")

// Handle blocks until the process is asked to stop or ctx is done. After a signal it
// waits delay before returning ErrTerminated, so load balancers can stop routing to us
// while in flight requests finish.
func Handle(ctx context.Context, delay time.Duration) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	return waitFor(ctx, quit, delay)
}

func waitFor(ctx context.Context, quit <-chan os.Signal, delay time.Duration) error {
	select {
	case sig := <-quit:
		o11y.Log(ctx, "termination: signal received",
			o11y.Field("signal", sig.String()),
			o11y.Field("delay_ms", delay.Milliseconds()),
		)
	case <-ctx.Done():
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
	return ErrTerminated
}
