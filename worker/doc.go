/*
Package worker runs a background loop with observability and back-off when no work is found.

The system package uses it to publish gauges on a fixed interval.
*/
package worker
