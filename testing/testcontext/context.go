// Package testcontext gives tests a context carrying a working o11y provider.
package testcontext

import (
	"context"

	"github.com/instanttexte/backend/config/o11y"
)

// ctx is a global singleton, initialised at package time since beeline holds
// global state that must only be set up once.
var ctx = newContext()

// Background returns a context for use in tests which contains a working o11y, so you get logs.
func Background() context.Context {
	return ctx
}

func newContext() context.Context {
	cx, _, _ := o11y.Setup(context.Background(), o11y.Config{
		Format:  "text",
		Service: "test-service",
		Version: "dev",
		Mode:    "test",
	})
	return cx
}
