// Package server runs the ingress service's listeners.
//
// It binds the public HTTP server and the optional Prometheus metrics server,
// serves until a termination signal arrives or a listener fails, and then
// shuts every server down gracefully within the configured timeout.
package server
