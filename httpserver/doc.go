/*
Package httpserver serves HTTP on a listener that tracks its connections.

Servers shut down gracefully when their context is cancelled, giving in flight
requests up to ten seconds to complete. The listener reports connection counts as
gauges through the system metrics loop.
*/
package httpserver
