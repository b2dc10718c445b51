package mongoex

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"

	"github.com/instanttexte/backend/testing/testcontext"
)

func TestNew(t *testing.T) {
	ctx := testcontext.Background()
	cfg := Config{
		URI:    "mongodb://localhost:27017",
		UseTLS: false,
	}

	client, err := New(ctx, "connection-test", cfg)
	assert.Assert(t, err)
	t.Cleanup(func() {
		t.Run("Disconnect client", func(t *testing.T) {
			err := client.Disconnect(ctx)
			assert.Assert(t, err)
		})
	})

	t.Run("Ping the server", func(t *testing.T) {
		err = client.Ping(ctx, readpref.Primary())
		assert.Assert(t, err)
	})

	t.Run("Ping the database", func(t *testing.T) {
		err = Ping(ctx, client.Database("instanttexte"))
		assert.Assert(t, err)
	})
}

func TestNew_InvalidURLDoesNotLeak(t *testing.T) {
	ctx := testcontext.Background()
	cfg := Config{
		URI:    "mongodb://root:]@localhost:27017",
		UseTLS: false,
	}

	_, err := New(ctx, "connection-test", cfg)
	assert.Check(t, cmp.Error(err, "mongoex: failed to parse URI: net/url: invalid userinfo"))
}

func TestNew_UnreachableServerIsNotAnError(t *testing.T) {
	ctx := testcontext.Background()
	cfg := Config{
		URI:     "mongodb://localhost:1",
		Options: options.Client().SetServerSelectionTimeout(100 * time.Millisecond),
	}

	client, err := New(ctx, "unreachable-test", cfg)
	assert.Assert(t, err)
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	err = Ping(ctx, client.Database("instanttexte"))
	assert.Check(t, cmp.ErrorContains(err, "server selection"))
}
