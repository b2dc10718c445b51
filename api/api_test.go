package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"gotest.tools/v3/assert"
)

type fixture struct {
	url string
}

func startAPI(ctx context.Context, t testing.TB, store Inserter) *fixture {
	t.Helper()

	api := New(ctx, Options{
		Store: store,
	})
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	return &fixture{
		url: srv.URL,
	}
}

type response struct {
	status      int
	contentType string
	body        string
}

func get(t testing.TB, rawurl string) response {
	t.Helper()

	resp, err := http.Get(rawurl) //nolint:gosec // test server url
	assert.Assert(t, err)

	defer func() {
		assert.Check(t, resp.Body.Close())
	}()

	b, err := io.ReadAll(resp.Body)
	assert.Assert(t, err)

	return response{
		status:      resp.StatusCode,
		contentType: resp.Header.Get("Content-Type"),
		body:        string(b),
	}
}
