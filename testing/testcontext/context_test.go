package testcontext

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/instanttexte/backend/o11y"
)

func TestBackground_MetricsProvider(t *testing.T) {
	ctx := Background()
	metrics := o11y.FromContext(ctx).MetricsProvider()

	err := metrics.Gauge("gauge", 1, nil, 1)
	assert.Assert(t, err)
}

func TestBackground_StartSpan(t *testing.T) {
	ctx := Background()
	_, span := o11y.StartSpan(ctx, "test span")
	assert.Assert(t, span != nil)
	span.AddField("collection", "test_collection")
	span.End()
}
