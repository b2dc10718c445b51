//go:build go1.25

package rundef

import (
	"context"
	"runtime"

	"github.com/instanttexte/backend/o11y"
)

// MaxProcs only records the value, since the runtime reads the cgroup CPU quota itself.
func MaxProcs(ctx context.Context) (err error) {
	_, span := o11y.StartSpan(ctx, "rundef: max procs")
	defer o11y.End(span, &err)

	span.AddField("max_procs", runtime.GOMAXPROCS(0))
	return nil
}
