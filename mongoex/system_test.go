package mongoex

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"

	"github.com/instanttexte/backend/system"
	"github.com/instanttexte/backend/testing/testcontext"
)

func TestLoad(t *testing.T) {
	ctx := testcontext.Background()
	cfg := Config{
		URI:    "mongodb://localhost:27017",
		UseTLS: false,
	}

	sys := system.New()
	db, err := Load(ctx, "connection-test", "mongoex-test", cfg, sys)
	assert.Assert(t, err)
	assert.Check(t, cmp.Equal(db.Name(), "connection-test"))
	assert.Check(t, cmp.Len(sys.HealthChecks(), 1))

	t.Run("Ping the database", func(t *testing.T) {
		err = Ping(ctx, db)
		assert.Assert(t, err)
	})

	t.Run("Ready check passes", func(t *testing.T) {
		name, ready, live := sys.HealthChecks()[0].HealthChecks()
		assert.Check(t, cmp.Equal(name, "mongo"))
		assert.Check(t, live == nil)
		assert.Check(t, ready(ctx))
	})

	t.Run("Cleanup disconnects the client", func(t *testing.T) {
		sys.Cleanup(ctx)
		err := db.Client().Disconnect(ctx)
		assert.Check(t, errors.Is(err, mongo.ErrClientDisconnected))
	})
}

func TestLoad_ReadyCheckFailsWhenUnreachable(t *testing.T) {
	ctx := testcontext.Background()
	cfg := Config{
		URI:     "mongodb://localhost:1",
		Options: options.Client().SetServerSelectionTimeout(100 * time.Millisecond),
	}

	sys := system.New()
	defer sys.Cleanup(ctx)

	_, err := Load(ctx, "connection-test", "mongoex-test", cfg, sys)
	assert.Assert(t, err)

	_, ready, _ := sys.HealthChecks()[0].HealthChecks()
	err = ready(context.Background())
	assert.Check(t, cmp.ErrorContains(err, "mongo health check failed on ping"))
}
