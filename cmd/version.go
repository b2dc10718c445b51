// Package cmd holds build information shared by the service binaries.
package cmd

// Set at link time with -ldflags "-X github.com/instanttexte/backend/cmd.Version=..."
var (
	Version = "dev"
	Date    = "unknown"
)
