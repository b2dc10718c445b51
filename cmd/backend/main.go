package main

import (
	"context"
	"errors"
	"log" //nolint:depguard // non-o11y log is allowed for a top-level fatal
	"time"

	"github.com/alecthomas/kong"

	"github.com/instanttexte/backend/api"
	"github.com/instanttexte/backend/cmd"
	"github.com/instanttexte/backend/cmd/setup"
	"github.com/instanttexte/backend/httpserver"
	"github.com/instanttexte/backend/httpserver/healthcheck"
	"github.com/instanttexte/backend/o11y"
	"github.com/instanttexte/backend/rundef"
	"github.com/instanttexte/backend/system"
	"github.com/instanttexte/backend/termination"
	"github.com/instanttexte/backend/testrecord"
)

type cli struct {
	setup.CLI

	ShutdownDelay time.Duration `env:"SHUTDOWN_DELAY" default:"0s" help:"Delay shutdown by this amount" hidden:""`
	APIAddr       string        `env:"API_ADDR" default:":8000" help:"The address for the API to listen on" validate:"hostname_port"`
}

// Validate is called by kong once flags and env vars are applied, so a bad value
// stops startup before anything is loaded.
func (c *cli) Validate() error {
	return setup.Validate(c)
}

func main() {
	err := setup.LoadDotEnv()
	if err != nil {
		log.Fatal("Unexpected Error: ", err)
	}

	cli := cli{}
	kong.Parse(&cli,
		kong.Name("backend"),
		kong.Description("Serves the greeting and test-db endpoints backed by MongoDB."),
	)

	err = run(cmd.Version, cmd.Date, cli)
	if err != nil && !errors.Is(err, termination.ErrTerminated) {
		log.Fatal("Unexpected Error: ", err)
	}
	log.Println("exited 0")
}

func run(version, date string, cli cli) (err error) {
	ctx, o11yCleanup, err := setup.LoadO11y(version, "api", cli.CLI)
	if err != nil {
		return err
	}
	defer o11yCleanup(ctx)

	ctx, runSpan := o11y.StartSpan(ctx, "main: run")
	defer o11y.End(runSpan, &err)

	o11y.Log(ctx, "starting backend",
		o11y.Field("version", version),
		o11y.Field("date", date),
	)

	if err := rundef.Defaults(ctx); err != nil {
		o11y.LogError(ctx, "runtime defaults", err)
	}

	sys := system.New()
	defer sys.Cleanup(ctx)

	_, err = loadAPI(ctx, cli, sys)
	if err != nil {
		return err
	}

	// Should be last so it collects all the health checks
	_, err = healthcheck.Load(ctx, cli.AdminAddr, sys)
	if err != nil {
		return err
	}

	return sys.Run(ctx, cli.ShutdownDelay)
}

func loadAPI(ctx context.Context, cli cli, sys *system.System) (*httpserver.HTTPServer, error) {
	db, err := setup.LoadDatabase(ctx, cli.CLI, sys)
	if err != nil {
		return nil, err
	}

	setup.CheckDatabase(ctx, db)

	a := api.New(ctx, api.Options{
		Store: testrecord.NewStore(db),
	})

	return httpserver.Load(ctx, httpserver.Config{
		Name:    "api",
		Addr:    cli.APIAddr,
		Handler: a.Handler(),
	}, sys)
}
