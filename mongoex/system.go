package mongoex

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/instanttexte/backend/system"
)

// Load builds the client for dbName and hands its lifecycle to sys: the client is
// disconnected on cleanup, pinged by the ready check, and its pool reported as gauges.
func Load(ctx context.Context, dbName, appName string, cfg Config, sys *system.System) (*mongo.Database, error) {
	if cfg.Options == nil {
		cfg.Options = options.Client()
	}
	poolMetrics := newPoolMetrics("mongo")
	cfg.Options.SetPoolMonitor(poolMetrics.PoolMonitor(cfg.Options.PoolMonitor))

	client, err := New(ctx, appName, cfg)
	if err != nil {
		return nil, err
	}
	sys.AddCleanup(client.Disconnect)

	sys.AddHealthCheck(&health{
		client: client,
	})
	sys.AddMetrics(poolMetrics)

	return client.Database(dbName), nil
}
