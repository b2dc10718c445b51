// Package ginrouter builds the gin engines behind the api and admin servers.
package ginrouter

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/instanttexte/backend/o11y"
	"github.com/instanttexte/backend/o11y/wrappers/o11ygin"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// Default returns an engine traced under serverName with the provider carried by ctx.
// Unknown paths get an empty 404 and a known path with the wrong method an empty 405.
func Default(ctx context.Context, serverName string) *gin.Engine {
	r := gin.New()
	r.Use(
		o11ygin.Middleware(o11y.FromContext(ctx), serverName),
		o11ygin.Recovery(),
		o11ygin.ClientCancelled(),
	)

	r.HandleMethodNotAllowed = true
	r.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})
	r.NoMethod(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusMethodNotAllowed)
	})

	return r
}
