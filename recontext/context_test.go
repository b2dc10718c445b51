package recontext

import (
	"context"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"

	"github.com/instanttexte/backend/o11y"
	"github.com/instanttexte/backend/testing/testcontext"
)

func TestWithNewTimeout_KeepsValues(t *testing.T) {
	ctx := testcontext.Background()
	derived, cancel := WithNewTimeout(ctx, time.Second)
	defer cancel()
	assert.Check(t, cmp.Equal(o11y.FromContext(derived), o11y.FromContext(ctx)))
}

func TestWithNewTimeout_ReplacesDeadline(t *testing.T) {
	old, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Minute))
	defer cancel()

	before := time.Now()
	derived, derivedCancel := WithNewTimeout(old, 100*time.Second)
	defer derivedCancel()

	deadline, ok := derived.Deadline()
	assert.Assert(t, ok)
	assert.Check(t, deadline.After(before.Add(99*time.Second)), "deadline %v", deadline)
	assert.Check(t, derived.Err())
}

func TestWithNewTimeout_IgnoresParentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	derived, derivedCancel := WithNewTimeout(ctx, 10*time.Second)

	cancel()
	assert.Check(t, cmp.ErrorIs(ctx.Err(), context.Canceled))
	assert.Check(t, derived.Err())
	select {
	case <-derived.Done():
		t.Fatal("derived context should still be active")
	default:
	}

	derivedCancel()
	assert.Check(t, cmp.ErrorIs(derived.Err(), context.Canceled))
}
