package healthcheck

import (
	"context"
	"fmt"

	"github.com/instanttexte/backend/httpserver"
	"github.com/instanttexte/backend/system"
)

// Load serves the admin API on addr. It should be called after everything else has
// been loaded, so it sees all the health checks.
func Load(ctx context.Context, addr string, sys *system.System) (*httpserver.HTTPServer, error) {
	healthAPI, err := New(ctx, sys.HealthChecks())
	if err != nil {
		return nil, fmt.Errorf("error creating health check API: %w", err)
	}

	return httpserver.Load(ctx, httpserver.Config{
		Name:    "admin",
		Addr:    addr,
		Handler: healthAPI.Handler(),
	}, sys)
}
