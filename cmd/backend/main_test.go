package main

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"

	"github.com/instanttexte/backend/cmd/setup"
	"github.com/instanttexte/backend/system"
	"github.com/instanttexte/backend/testing/testcontext"
)

func TestLoadAPI_UnreachableDatabase(t *testing.T) {
	ctx, cancel := context.WithCancel(testcontext.Background())
	defer cancel()

	sys := system.New()
	t.Cleanup(func() {
		sys.Cleanup(testcontext.Background())
	})

	srv, err := loadAPI(ctx, cli{
		CLI: setup.CLI{
			DatabaseURL:  "mongodb://localhost:1/?serverSelectionTimeoutMS=100",
			DatabaseName: "instanttexte",
		},
		APIAddr: "localhost:0",
	}, sys)
	assert.Assert(t, err)
	assert.Check(t, cmp.Len(sys.HealthChecks(), 1))

	done := make(chan error, 1)
	go func() {
		done <- sys.Run(ctx, 0)
	}()
	t.Cleanup(func() {
		cancel()
		assert.Check(t, <-done)
	})

	baseURL := "http://" + srv.Addr()

	status, body := get(t, baseURL+"/")
	assert.Check(t, cmp.Equal(status, http.StatusOK))
	assert.Check(t, cmp.Equal(body, "Hello from Axum backend!"))

	status, body = get(t, baseURL+"/test-db")
	assert.Check(t, cmp.Equal(status, http.StatusOK))
	assert.Check(t, strings.HasPrefix(body, "Failed to insert: "), body)
}

func TestLoadAPI_BindFailureIsFatal(t *testing.T) {
	ctx := testcontext.Background()
	sys := system.New()
	defer sys.Cleanup(ctx)

	_, err := loadAPI(ctx, cli{
		CLI: setup.CLI{
			DatabaseURL:  "mongodb://localhost:1/?serverSelectionTimeoutMS=100",
			DatabaseName: "instanttexte",
		},
		APIAddr: "localhost:-1",
	}, sys)
	assert.Check(t, cmp.ErrorContains(err, `error starting "api" server`))
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()

	res, err := http.Get(url) //nolint:gosec // test server url
	assert.Assert(t, err)
	defer func() {
		assert.Check(t, res.Body.Close())
	}()

	b, err := io.ReadAll(res.Body)
	assert.Assert(t, err)
	return res.StatusCode, string(b)
}
