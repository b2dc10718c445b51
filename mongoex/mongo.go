package mongoex

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"

	"github.com/gwatts/rootcerts"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/instanttexte/backend/config/secret"
	"github.com/instanttexte/backend/o11y"
)

type Config struct {
	URI    secret.String
	UseTLS bool

	Options *options.ClientOptions
}

// New builds a mongo client. The driver connects lazily, so an unreachable server
// is not an error here. The context passed in is expected to carry an o11y provider
// and is only used for reporting (not for cancellation).
func New(ctx context.Context, appName string, cfg Config) (client *mongo.Client, err error) {
	_, span := o11y.StartSpan(ctx, "cfg: connect to database")
	defer o11y.End(span, &err)

	mongoURL, err := url.Parse(cfg.URI.Raw())

	// url.Parse will print the URI if it can't parse. The URI contains the password, so this gets the underlying error
	// without printing the secret string.
	var urlError *url.Error
	if errors.As(err, &urlError) {
		return nil, fmt.Errorf("mongoex: failed to parse URI: %w", urlError.Err)
	} else if err != nil {
		return nil, err
	}

	span.AddField("host", mongoURL.Host)
	span.AddField("username", mongoURL.User.Username())

	opts := cfg.Options
	if opts == nil {
		opts = options.Client()
	}

	opts.
		ApplyURI(cfg.URI.Raw()).
		SetAppName(appName)

	if cfg.UseTLS {
		opts = opts.SetTLSConfig(&tls.Config{
			MinVersion: tls.VersionTLS12,
			RootCAs:    rootcerts.ServerCertPool(),
		})
	}

	client, err = mongo.Connect(context.Background(), opts)
	if err != nil {
		return nil, fmt.Errorf("mongoex: failed to create client: %w", err)
	}
	return client, nil
}

// Ping runs the ping command against db, which needs a round trip to a server.
func Ping(ctx context.Context, db *mongo.Database) (err error) {
	ctx, span := startSpan(ctx, db.Name(), db.Name(), "ping")
	defer o11y.End(span, &err)

	return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}
