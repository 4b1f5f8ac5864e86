package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/MKhiriev/go-ingress/internal/config"
	"github.com/MKhiriev/go-ingress/internal/logger"
)

type httpServer struct {
	name   string
	server *http.Server

	logger *logger.Logger
}

func newHTTPServer(name, addr string, handler http.Handler, cfg config.Server, logger *logger.Logger) *httpServer {
	return &httpServer{
		name: name,
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		},
		logger: logger,
	}
}

func (h *httpServer) listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s server on %s: %w", errBind, h.name, h.server.Addr, err)
	}
	return ln, nil
}

// serve blocks until the server is shut down. A graceful shutdown is not an
// error.
func (h *httpServer) serve(ln net.Listener) error {
	h.logger.Info().
		Str("server", h.name).
		Str("address", ln.Addr().String()).
		Msg("listening")

	if err := h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server: %w", h.name, err)
	}
	return nil
}

func (h *httpServer) shutdown(ctx context.Context) error {
	if err := h.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("%s server shutdown: %w", h.name, err)
	}
	h.logger.Info().Str("server", h.name).Msg("stopped")
	return nil
}
