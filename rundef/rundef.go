// Package rundef tunes the Go runtime for the container the backend runs in.
package rundef

import (
	"context"

	"github.com/KimMachineGun/automemlimit/memlimit"
	"golang.org/x/sync/errgroup"

	"github.com/instanttexte/backend/o11y"
)

const memLimitRatio = 0.9

// Defaults sets GOMEMLIMIT and GOMAXPROCS from the detected cgroup limits.
func Defaults(ctx context.Context) (err error) {
	ctx, span := o11y.StartSpan(ctx, "rundef: defaults")
	defer o11y.End(span, &err)

	var g errgroup.Group
	g.Go(func() error {
		return MemLimit(ctx)
	})
	g.Go(func() error {
		return MaxProcs(ctx)
	})
	return g.Wait()
}

// MemLimit sets GOMEMLIMIT to 90% of the cgroup memory limit, falling back to total
// system memory outside a cgroup.
func MemLimit(ctx context.Context) (err error) {
	_, span := o11y.StartSpan(ctx, "rundef: mem limit")
	defer o11y.End(span, &err)

	limit, err := memlimit.SetGoMemLimitWithOpts(
		memlimit.WithRatio(memLimitRatio),
		memlimit.WithProvider(memlimit.ApplyFallback(memlimit.FromCgroup, memlimit.FromSystem)),
	)
	if err != nil {
		return err
	}
	span.AddField("mem_limit", limit)
	return nil
}
