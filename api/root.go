package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const greeting = "Hello from Axum backend!"

func (a *API) getRoot(c *gin.Context) {
	c.String(http.StatusOK, greeting)
}
