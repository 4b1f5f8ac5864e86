package server

import (
	"context"
	"errors"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-ingress/internal/config"
	"github.com/MKhiriev/go-ingress/internal/handler"
	"github.com/MKhiriev/go-ingress/internal/logger"
	"github.com/MKhiriev/go-ingress/internal/metrics"
	"golang.org/x/sync/errgroup"
)

type server struct {
	httpServer    *httpServer
	metricsServer *httpServer

	shutdownTimeout time.Duration
	logger          *logger.Logger
}

// NewServer builds the public HTTP server from handlers and, when
// cfg.MetricsAddress is set and reg is not nil, a metrics server exposing reg.
func NewServer(handlers *handler.Handlers, reg *metrics.Registry, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil {
		return nil, errNoServersAreCreated
	}

	h, err := handlers.HTTP.Init()
	if err != nil {
		return nil, err
	}

	servers := &server{
		httpServer:      newHTTPServer("http", cfg.HTTPAddress(), h, cfg, logger),
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}
	if cfg.MetricsAddress != "" && reg != nil {
		servers.metricsServer = newHTTPServer("metrics", cfg.MetricsAddress, reg.Handler(), cfg, logger)
	}

	return servers, nil
}

func (s *server) RunServer() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	return s.run(ctx)
}

func (s *server) Shutdown(ctx context.Context) error {
	var errs []error
	for _, srv := range s.servers() {
		if err := srv.shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *server) servers() []*httpServer {
	servers := []*httpServer{s.httpServer}
	if s.metricsServer != nil {
		servers = append(servers, s.metricsServer)
	}
	return servers
}

func (s *server) run(ctx context.Context) error {
	listeners, err := s.listen()
	if err != nil {
		return err
	}
	return s.serve(ctx, listeners)
}

// listen binds every server before any starts serving, so a busy port fails
// startup as a whole.
func (s *server) listen() ([]net.Listener, error) {
	servers := s.servers()
	listeners := make([]net.Listener, 0, len(servers))
	for _, srv := range servers {
		ln, err := srv.listen()
		if err != nil {
			for _, l := range listeners {
				_ = l.Close()
			}
			return nil, err
		}
		listeners = append(listeners, ln)
	}
	return listeners, nil
}

func (s *server) serve(ctx context.Context, listeners []net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	for i, srv := range s.servers() {
		ln := listeners[i]
		g.Go(func() error {
			return srv.serve(ln)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info().Msg("shutting down servers")

		shutdownCtx := context.Background()
		if s.shutdownTimeout > 0 {
			var cancel context.CancelFunc
			shutdownCtx, cancel = context.WithTimeout(shutdownCtx, s.shutdownTimeout)
			defer cancel()
		}
		return s.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}
