/*
Package healthcheck serves the admin API: liveness and readiness checks gathered from
the system, and the Go runtime's standard pprof endpoints.
*/
package healthcheck
