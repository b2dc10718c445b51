package mongoex

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/event"
)

// poolGauges maps driver pool events to the gauge counting them.
var poolGauges = map[string]string{
	event.PoolCreated:        "pool_created",
	event.PoolCleared:        "pool_cleared",
	event.PoolClosedEvent:    "pool_closed",
	event.ConnectionCreated:  "connection_created",
	event.ConnectionClosed:   "connection_closed",
	event.GetSucceeded:       "get_succeeded",
	event.GetFailed:          "get_failed",
	event.ConnectionReturned: "connection_returned",
}

// poolMetrics counts connection pool events for the system metrics reporter.
type poolMetrics struct {
	name string

	mu     sync.Mutex
	counts map[string]int64
	opts   event.MonitorPoolOptions
}

func newPoolMetrics(name string) *poolMetrics {
	return &poolMetrics{
		name:   name,
		counts: make(map[string]int64, len(poolGauges)),
	}
}

func (p *poolMetrics) MetricName() string {
	return p.name
}

func (p *poolMetrics) Gauges(context.Context) map[string]float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	g := make(map[string]float64, len(poolGauges)+4)
	for _, name := range poolGauges {
		g[name] = float64(p.counts[name])
	}
	g["in_use"] = float64(p.counts["get_succeeded"] - p.counts["connection_returned"])
	g["max_pool_size"] = float64(p.opts.MaxPoolSize)
	g["min_pool_size"] = float64(p.opts.MinPoolSize)
	g["wait_queue_timeout_ms"] = float64(p.opts.WaitQueueTimeoutMS)
	return g
}

// PoolMonitor returns a monitor that records events before handing them to parent.
func (p *poolMetrics) PoolMonitor(parent *event.PoolMonitor) *event.PoolMonitor {
	return &event.PoolMonitor{
		Event: func(e *event.PoolEvent) {
			p.record(e)
			if parent != nil && parent.Event != nil {
				parent.Event(e)
			}
		},
	}
}

func (p *poolMetrics) record(e *event.PoolEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if name, ok := poolGauges[e.Type]; ok {
		p.counts[name]++
	}
	if e.PoolOptions != nil {
		p.opts = *e.PoolOptions
	}
}
