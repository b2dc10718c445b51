//go:build !go1.25

package rundef

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/instanttexte/backend/o11y"
)

func MaxProcs(ctx context.Context) (err error) {
	ctx, span := o11y.StartSpan(ctx, "rundef: max procs")
	defer o11y.End(span, &err)

	_, err = maxprocs.Set(maxprocs.Min(1), maxprocs.Logger(func(format string, args ...interface{}) {
		o11y.Log(ctx, "rundef: "+fmt.Sprintf(format, args...))
	}))
	if err != nil {
		return err
	}
	span.AddField("max_procs", runtime.GOMAXPROCS(0))
	return nil
}
