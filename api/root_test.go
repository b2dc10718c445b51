package api

import (
	"net/http"
	"sync"
	"testing"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"

	"github.com/instanttexte/backend/testing/testcontext"
)

func TestRoot(t *testing.T) {
	ctx := testcontext.Background()
	api := startAPI(ctx, t, &fakeStore{})

	res := get(t, api.url+"/")
	assert.Check(t, cmp.Equal(res.status, http.StatusOK))
	assert.Check(t, cmp.Equal(res.body, "Hello from Axum backend!"))
	assert.Check(t, cmp.Equal(res.contentType, "text/plain; charset=utf-8"))
}

func TestRoot_Concurrent(t *testing.T) {
	ctx := testcontext.Background()
	api := startAPI(ctx, t, &fakeStore{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := get(t, api.url+"/")
			assert.Check(t, cmp.Equal(res.status, http.StatusOK))
			assert.Check(t, cmp.Equal(res.body, "Hello from Axum backend!"))
		}()
	}
	wg.Wait()
}

func TestNotFound(t *testing.T) {
	ctx := testcontext.Background()
	api := startAPI(ctx, t, &fakeStore{})

	res := get(t, api.url+"/nope")
	assert.Check(t, cmp.Equal(res.status, http.StatusNotFound))
}

func TestRoot_WrongMethod(t *testing.T) {
	ctx := testcontext.Background()
	api := startAPI(ctx, t, &fakeStore{})

	res, err := http.Post(api.url+"/", "text/plain", nil)
	assert.Assert(t, err)
	assert.Check(t, res.Body.Close())
	assert.Check(t, cmp.Equal(res.StatusCode, http.StatusMethodNotAllowed))
}
