package mongoex

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type health struct {
	client *mongo.Client
}

func (h *health) HealthChecks() (name string, ready, live func(ctx context.Context) error) {
	ready = func(ctx context.Context) error {
		ctxPing, cancelPing := context.WithTimeout(ctx, 5*time.Second)
		defer cancelPing()

		err := h.client.Ping(ctxPing, readpref.Primary())
		if err != nil {
			return fmt.Errorf("mongo health check failed on ping: %w", err)
		}
		return nil
	}
	return "mongo", ready, nil
}
