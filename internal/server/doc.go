// Package server runs the kernel's HTTP boundary.
//
// It owns the listener lifecycle: startup, signal handling and a graceful
// shutdown bounded by the configured timeout. Background workers such as
// the configuration watcher share the server's signal context and stop with
// it.
package server
