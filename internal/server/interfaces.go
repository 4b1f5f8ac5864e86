package server

import "context"

// Server defines the lifecycle contract of the listeners managed by this
// package.
type Server interface {
	// RunServer binds all listeners and serves until SIGTERM, SIGINT or
	// SIGQUIT is received or a listener fails. It returns after graceful
	// shutdown; a non-nil error means startup or serving failed.
	RunServer() error

	// Shutdown gracefully stops all servers, waiting for in-flight
	// requests until ctx expires.
	Shutdown(ctx context.Context) error
}
