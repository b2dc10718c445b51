// Package setup contains common wiring/setup code used by the service binaries
package setup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	_ "time/tzdata" // include embedded timezone data

	"github.com/gwatts/rootcerts"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"

	o11yconf "github.com/instanttexte/backend/config/o11y"
	"github.com/instanttexte/backend/config/secret"
	"github.com/instanttexte/backend/mongoex"
	"github.com/instanttexte/backend/o11y"
	"github.com/instanttexte/backend/system"
)

const (
	serviceName = "instanttexte-backend"
	appName     = "backend"
)

type CLI struct {
	AdminAddr string `env:"ADMIN_ADDR" default:":8001" help:"The address for the admin API to listen on" validate:"hostname_port"`

	O11yStatsd           string        `name:"o11y-statsd" env:"O11Y_STATSD" default:"" help:"Address to send statsd metrics, metrics are off when empty" validate:"omitempty,hostname_port"`
	O11yHoneycombEnabled bool          `name:"o11y-honeycomb" env:"O11Y_HONEYCOMB" default:"false" help:"Send traces to honeycomb"`
	O11yHoneycombDataset string        `name:"o11y-honeycomb-dataset" env:"O11Y_HONEYCOMB_DATASET" default:"backend" help:"Honeycomb dataset for traces"`
	O11yHoneycombKey     secret.String `name:"o11y-honeycomb-key" env:"O11Y_HONEYCOMB_KEY" help:"Honeycomb API key"`
	O11yFormat           string        `name:"o11y-format" env:"O11Y_FORMAT" enum:"json,color,text" default:"text" help:"Format used for stderr logging"`
	O11yRollbarToken     secret.String `name:"o11y-rollbar-token" env:"O11Y_ROLLBAR_TOKEN" help:"Rollbar token, panics are reported when set"`
	O11yRollbarEnv       string        `name:"o11y-rollbar-env" env:"O11Y_ROLLBAR_ENV" default:"production" help:"Rollbar environment"`

	DatabaseURL  secret.String `name:"database-url" env:"DATABASE_URL" default:"mongodb://localhost:27017" help:"MongoDB connection string"`
	DatabaseName string        `name:"database-name" env:"DATABASE_NAME" default:"instanttexte" hidden:"" validate:"required"`
	DatabaseTLS  bool          `name:"database-tls" env:"DATABASE_TLS" default:"false" help:"Connect to MongoDB over TLS"`
}

func init() {
	err := rootcerts.UpdateDefaultTransport()
	if err != nil {
		panic(fmt.Errorf("failed to inject rootcerts: %w", err))
	}
}

// LoadDotEnv loads environment variables from the given files, .env by default.
// Missing files are ignored and variables already set are never overridden.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, f := range filenames {
		err := godotenv.Load(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

func LoadO11y(version, mode string, cli CLI) (context.Context, func(context.Context), error) {
	cfg := o11yconf.Config{
		Statsd:            cli.O11yStatsd,
		RollbarToken:      cli.O11yRollbarToken,
		RollbarEnv:        cli.O11yRollbarEnv,
		RollbarServerRoot: "github.com/instanttexte/backend",
		HoneycombEnabled:  cli.O11yHoneycombEnabled,
		HoneycombDataset:  cli.O11yHoneycombDataset,
		HoneycombKey:      cli.O11yHoneycombKey,
		SampleTraces:      true,
		Format:            cli.O11yFormat,
		Version:           version,
		Service:           serviceName,
		StatsNamespace:    "instanttexte.backend.",
		Mode:              mode,
	}
	return o11yconf.Setup(context.Background(), cfg)
}

// LoadDatabase builds the database handle. The driver connects lazily, so this only
// fails on a malformed configuration.
func LoadDatabase(ctx context.Context, cli CLI, sys *system.System) (*mongo.Database, error) {
	return mongoex.Load(ctx, cli.DatabaseName, appName, mongoex.Config{
		URI:    cli.DatabaseURL,
		UseTLS: cli.DatabaseTLS,
	}, sys)
}

// CheckDatabase pings the database once. A failure is reported but not returned,
// the service starts anyway and the ready check keeps reporting the problem.
func CheckDatabase(ctx context.Context, db *mongo.Database) {
	err := mongoex.Ping(ctx, db)
	if err != nil {
		o11y.LogError(ctx, "Failed to connect to MongoDB", err,
			o11y.Field("database", db.Name()),
		)
		return
	}
	o11y.Log(ctx, "Connected to MongoDB successfully!",
		o11y.Field("database", db.Name()),
	)
}
