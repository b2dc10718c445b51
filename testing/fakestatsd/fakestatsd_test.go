package fakestatsd

import (
	"strings"
	"testing"

	"github.com/DataDog/datadog-go/statsd"
	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"
	"gotest.tools/v3/poll"
)

func TestFakeStatsd(t *testing.T) {
	s := New(t)

	stats, err := statsd.New(s.Addr(),
		statsd.WithNamespace("instanttexte.backend."),
		statsd.WithTags([]string{"version:1.2.3"}),
		statsd.WithoutTelemetry(),
	)
	assert.Assert(t, err)

	err = stats.Count("db.insert", 1, []string{"result:success"}, 1)
	assert.Check(t, err)
	assert.Check(t, stats.Close())

	poll.WaitOn(t, func(t poll.LogT) poll.Result {
		if len(s.Metrics()) == 0 {
			return poll.Continue("no metrics received")
		}
		return poll.Success()
	})
	got := s.Named("instanttexte.backend.db.insert")
	assert.Assert(t, cmp.Len(got, 1))
	assert.Check(t, strings.HasPrefix(got[0].Value, "1|c"), got[0].Value)
	assert.Check(t, cmp.Contains(got[0].Tags, "version:1.2.3"))
	assert.Check(t, cmp.Contains(got[0].Tags, "result:success"))
}

func TestParse(t *testing.T) {
	assert.Check(t, cmp.DeepEqual(parse("handler:12.5|ms"), Metric{Name: "handler", Value: "12.5|ms"}))
	assert.Check(t, cmp.DeepEqual(parse("pool:3|g|#db:mongo"), Metric{
		Name: "pool", Value: "3|g", Tags: []string{"db:mongo"},
	}))
}
