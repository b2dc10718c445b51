package mongofixture

import (
	"testing"

	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"

	"github.com/instanttexte/backend/testing/testcontext"
)

func TestSetup(t *testing.T) {
	ctx := testcontext.Background()
	fix := Setup(ctx, t, Connection{})

	t.Run("Check we got some kind of connection", func(t *testing.T) {
		assert.Assert(t, fix.DB != nil)
		assert.Check(t, cmp.Contains(fix.Name, "-TestSetup"))
		assert.Check(t, cmp.Equal(fix.URI, DefaultURI))
	})

	t.Run("Ping the database", func(t *testing.T) {
		err := fix.DB.Client().Ping(ctx, readpref.Primary())
		assert.Check(t, err)
	})
}

func TestSanitise(t *testing.T) {
	assert.Check(t, cmp.Equal(sanitise("TestAPI/test-db with.dots"), "TestAPI_test-db_with_dots"))
}

func TestTruncate(t *testing.T) {
	long := "0123456789012345678901234567890123456789012345678901234567890123456789"
	assert.Check(t, cmp.Len(truncate(long), 63))
	assert.Check(t, cmp.Equal(truncate("short"), "short"))
}
