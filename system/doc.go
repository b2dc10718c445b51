/*
Package system manages the startup, running, metrics and shutdown of the service.

The service runs a few things in the background: the API and admin HTTP servers and a
metrics loop. They need to shut down cleanly when told to, after waiting a little time
so that in flight requests are not cut off.

A typical main wires it like this:

	sys := system.New()
	defer sys.Cleanup(ctx)

	db, err := mongoex.Load(ctx, "instanttexte", "backend", cfg, sys)
	...
	_, err = httpserver.Load(ctx, httpserver.Config{Name: "api", Addr: ":8000", Handler: h}, sys)
	...
	_, err = healthcheck.Load(ctx, ":8001", sys)
	...
	return sys.Run(ctx, 5*time.Second)
*/
package system
