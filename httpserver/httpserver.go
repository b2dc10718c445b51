package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/instanttexte/backend/o11y"
	"github.com/instanttexte/backend/recontext"
	"github.com/instanttexte/backend/system"
)

const shutdownTimeout = 10 * time.Second

type HTTPServer struct {
	name     string
	listener *trackedListener
	server   *http.Server
}

type Config struct {
	// Name is the name of the server in o11y
	Name string
	// Addr is the address to listen on
	Addr string
	// Handler is the HTTP handler to delegate requests to.
	Handler http.Handler

	// Optional
	// Network must be "tcp", "tcp4", "tcp6", "unix" or "" (which defaults to tcp).
	Network string
}

// New binds the listener straight away, so a bad address fails at startup rather
// than when the system starts running.
func New(ctx context.Context, cfg Config) (s *HTTPServer, err error) {
	_, span := o11y.StartSpan(ctx, "server: new-server "+cfg.Name)
	defer o11y.End(span, &err)
	if cfg.Network == "" {
		cfg.Network = "tcp"
	}
	span.AddField("server_name", cfg.Name)
	span.AddField("address", cfg.Addr)
	span.AddField("network", cfg.Network)

	ln, err := net.Listen(cfg.Network, cfg.Addr)
	if err != nil {
		return nil, err
	}

	tr := newTrackedListener(cfg.Name, ln)
	span.AddField("address", tr.Addr().String())

	return &HTTPServer{
		name:     cfg.Name,
		listener: tr,
		server: &http.Server{
			Handler:           cfg.Handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       55 * time.Second,
			WriteTimeout:      55 * time.Second,
		},
	}, nil
}

// Serve the http server. On context cancellation the server is shutdown giving some time
// for the in flight requests to be handled.
func (s *HTTPServer) Serve(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-ctx.Done()
		cctx, cancel := recontext.WithNewTimeout(ctx, shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(cctx); err != nil {
			return fmt.Errorf("%s server shutdown failed: %w", s.name, err)
		}
		o11y.Log(cctx, "server: shutdown", o11y.Field("server_name", s.name))
		return nil
	})

	g.Go(func() error {
		err := s.server.Serve(s.listener)
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	return g.Wait()
}

func (s *HTTPServer) MetricsProducer() system.MetricProducer {
	return s.listener
}

func (s *HTTPServer) Addr() string {
	return s.listener.Addr().String()
}

// Load creates the server and hands it to sys to run, along with its listener gauges.
func Load(ctx context.Context, cfg Config, sys *system.System) (*HTTPServer, error) {
	server, err := New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("error starting %q server: %w", cfg.Name, err)
	}

	sys.AddService(server.Serve)
	sys.AddMetrics(server.MetricsProducer())
	return server, nil
}
