// Package http is the browser-facing boundary of the kernel.
//
// Every application request is turned into a user configuration: the
// current base tree from the loader plus the request's query, form and path
// values as general.parameters with the "browser" context. The result is
// bootstrapped, checked against the enabled auth sections and dispatched to
// the application component. Tracing, access logging and compression are
// applied as chi middleware; /metrics, /health and /version are served
// without bootstrapping.
package http
