package o11y

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/rollbar/rollbar-go"
)

// End records the outcome of err on the span and ends it. Pass the address of a named
// return so the deferred call sees the final error:
//
//	defer o11y.End(span, &err)
func End(span Span, err *error) {
	var e error
	if err != nil {
		e = *err
	}
	AddResultToSpan(span, e)
	span.End()
}

// AddResultToSpan sets "result" to success, error or canceled. Cancellations and
// deadlines are recorded as a warning rather than an error.
func AddResultToSpan(span Span, err error) {
	switch {
	case err == nil:
		span.AddRawField("result", "success")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		span.AddRawField("result", "canceled")
		span.AddRawField("warning", err.Error())
	default:
		span.AddRawField("result", "error")
		span.AddRawField("error", err.Error())
	}
}

// LogError emits a zero duration event carrying err.
func LogError(ctx context.Context, name string, err error, fields ...Pair) {
	_, span := StartSpan(ctx, name)
	for _, f := range fields {
		span.AddField(f.Key, f.Value)
	}
	AddResultToSpan(span, err)
	span.End()
}

type rollbarProvider interface {
	RollBarClient() *rollbar.Client
}

// HandlePanic records a recovered panic on span and forwards it to rollbar when the
// provider in ctx has a client. r may be nil outside of a request.
func HandlePanic(ctx context.Context, span Span, recovered interface{}, r *http.Request) error {
	err := fmt.Errorf("panic handled: %+v", recovered)
	span.AddRawField("panic", recovered)
	span.AddRawField("has_panicked", "true")
	span.AddRawField("stack", string(debug.Stack()))
	span.RecordMetric(Incr("panics", "name"))

	rp, ok := FromContext(ctx).(rollbarProvider)
	if !ok {
		return err
	}
	if r != nil {
		rp.RollBarClient().RequestError(rollbar.CRIT, r, err)
	} else {
		rp.RollBarClient().LogPanic(recovered, true)
	}
	return err
}
