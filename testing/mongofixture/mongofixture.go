/*
Package mongofixture will setup an isolated Mongo DB for your tests, so they don't interfere.
*/
package mongofixture

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gotest.tools/v3/assert"

	"github.com/instanttexte/backend/o11y"
	"github.com/instanttexte/backend/testing/testrand"
)

// DefaultURI is the local MongoDB the tests expect.
const DefaultURI = "mongodb://localhost:27017"

type Fixture struct {
	DB   *mongo.Database
	Name string
	URI  string
}

type Connection struct {
	URI string
}

// Setup connects to the server at con.URI and returns a database named after the
// test. The database is dropped when the test finishes.
func Setup(ctx context.Context, t testing.TB, con Connection) *Fixture {
	t.Helper()
	ctx, span := o11y.StartSpan(ctx, "mongofixture: setup")
	defer span.End()

	if con.URI == "" {
		con.URI = DefaultURI
	}

	opts := options.Client().
		ApplyURI(con.URI).
		SetAppName("test")

	client, err := mongo.Connect(ctx, opts)
	assert.Assert(t, err)

	t.Cleanup(func() {
		assert.Check(t, client.Disconnect(ctx))
	})

	name := fmt.Sprintf("%s-%s", testrand.Hex(6), sanitise(t.Name()))
	name = truncate(name)
	span.AddField("name", name)

	db := client.Database(name)
	t.Cleanup(func() {
		assert.Check(t, db.Drop(ctx))
	})

	return &Fixture{
		DB:   db,
		Name: name,
		URI:  con.URI,
	}
}

// sanitise removes the characters mongo does not allow in database names.
func sanitise(s string) string {
	return strings.NewReplacer("/", "_", ".", "_", " ", "_", `"`, "_", "$", "_").Replace(s)
}

// truncate keeps names inside mongo's 64 byte database name limit.
func truncate(s string) string {
	if len(s) >= 64 {
		return s[:63]
	}
	return s
}
