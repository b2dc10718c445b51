package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/instanttexte/backend/o11y"
)

// getTestDB inserts one test record. Insert failures are still answered with a 200,
// the error is only visible in the body and on the request span.
func (a *API) getTestDB(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := a.store.Add(ctx)
	if err != nil {
		if span := o11y.FromContext(ctx).GetSpan(ctx); span != nil {
			o11y.AddResultToSpan(span, err)
		}
		c.String(http.StatusOK, "Failed to insert: %v", err)
		return
	}

	c.String(http.StatusOK, "Inserted document with ID: %s", renderID(id))
}

// renderID prints object ids in mongo shell notation, ObjectId("<hex>").
func renderID(id interface{}) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return fmt.Sprintf("ObjectId(%q)", oid.Hex())
	}
	return fmt.Sprint(id)
}
