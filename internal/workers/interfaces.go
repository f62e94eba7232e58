// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface, a Workers aggregate that starts several
// workers in a unified way, and the configuration file watcher.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
// Run starts the worker; it may block or spawn goroutines that stop when ctx
// is cancelled.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    go func() { <-ctx.Done() }()
//	}
type Worker interface {
	Run(ctx context.Context)
}

// Reloader is a configuration source that can re-read its file.
type Reloader interface {
	Path() string
	Reload() error
}
