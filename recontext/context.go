// Package recontext derives contexts that keep their parent's values, such as the o11y
// provider, but not its cancellation. They are used for work that must outlive a
// cancelled request or run group, like draining a server.
package recontext

import (
	"context"
	"time"
)

type detached struct{ context.Context }

func (detached) Deadline() (deadline time.Time, ok bool) { return time.Time{}, false }
func (detached) Done() <-chan struct{}                   { return nil }
func (detached) Err() error                              { return nil }

// WithNewTimeout returns a context carrying parent's values that is only cancelled by
// its own timeout or cancel func. A timeout is mandatory so the context cannot hang.
func WithNewTimeout(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(detached{parent}, timeout)
}
