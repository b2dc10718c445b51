// Package api serves the public HTTP endpoints.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/instanttexte/backend/httpserver/ginrouter"
)

// Inserter stores a new test record and returns its id.
type Inserter interface {
	Add(ctx context.Context) (id interface{}, err error)
}

type API struct {
	router *gin.Engine
	store  Inserter
}

type Options struct {
	Store Inserter
}

func New(ctx context.Context, opts Options) *API {
	r := ginrouter.Default(ctx, "api")
	a := &API{
		router: r,
		store:  opts.Store,
	}

	r.GET("/", a.getRoot)
	r.GET("/test-db", a.getTestDB)

	return a
}

func (a *API) Handler() http.Handler {
	return a.router
}
