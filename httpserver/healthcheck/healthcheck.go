package healthcheck

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hellofresh/health-go/v4"

	"github.com/instanttexte/backend/httpserver/ginrouter"
	"github.com/instanttexte/backend/system"
)

const checkTimeout = 5 * time.Second

type API struct {
	router *gin.Engine
}

func New(ctx context.Context, checked []system.HealthChecker) (*API, error) {
	r := ginrouter.Default(ctx, "admin")

	live, ready, err := newHealthHandlers(checked)
	if err != nil {
		return nil, fmt.Errorf("failed to create health checks: %w", err)
	}

	r.GET("/live", gin.WrapH(live.Handler()))
	r.GET("/ready", gin.WrapH(ready.Handler()))

	debug := r.Group("/debug/pprof")
	debug.GET("/", gin.WrapF(pprof.Index))
	debug.GET("/cmdline", gin.WrapF(pprof.Cmdline))
	debug.GET("/profile", gin.WrapF(pprof.Profile))
	debug.GET("/symbol", gin.WrapF(pprof.Symbol))
	debug.POST("/symbol", gin.WrapF(pprof.Symbol))
	debug.GET("/trace", gin.WrapF(pprof.Trace))
	// pprof.Index serves the named profiles, such as heap and goroutine
	debug.GET("/:profile", gin.WrapF(pprof.Index))

	return &API{router: r}, nil
}

func (a *API) Handler() http.Handler {
	return a.router
}

func newHealthHandlers(checked []system.HealthChecker) (live, ready *health.Health, err error) {
	live, err = health.New()
	if err != nil {
		return nil, nil, err
	}

	ready, err = health.New()
	if err != nil {
		return nil, nil, err
	}

	for _, c := range checked {
		name, readyCheck, liveCheck := c.HealthChecks()

		if readyCheck != nil {
			err = register(ready, name, readyCheck)
			if err != nil {
				return nil, nil, err
			}
		}

		if liveCheck != nil {
			err = register(live, name, liveCheck)
			if err != nil {
				return nil, nil, err
			}
		}
	}

	return live, ready, nil
}

func register(h *health.Health, name string, check func(ctx context.Context) error) error {
	return h.Register(health.Config{
		Name:      name,
		Timeout:   checkTimeout,
		SkipOnErr: false,
		Check:     health.CheckFunc(check),
	})
}
