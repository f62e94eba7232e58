package server

import "context"

// Server defines the lifecycle contract of the kernel's transport.
//
// RunServer blocks until ctx is cancelled or a termination signal arrives,
// then shuts down gracefully.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
