package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-app-kernel/internal/config"
	"github.com/MKhiriev/go-app-kernel/internal/handler"
	"github.com/MKhiriev/go-app-kernel/internal/logger"
	"github.com/MKhiriev/go-app-kernel/internal/workers"
)

type server struct {
	httpServer *httpServer
	workers    *workers.Workers
	logger     *logger.Logger
}

// NewServer wires the HTTP server for handlers. ws, when not nil, is
// started together with the server and stopped on shutdown.
func NewServer(handlers *handler.Handlers, cfg config.Server, ws *workers.Workers, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{workers: ws, logger: logger}

	if handlers != nil && handlers.HTTP != nil && cfg.HTTPAddress != "" {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}

	if servers.httpServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

func (s *server) RunServer(ctx context.Context) error {
	if s.httpServer == nil {
		return errNoServersToRun
	}

	ctx, stop := signal.NotifyContext(
		ctx,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	listener, err := s.httpServer.Listen()
	if err != nil {
		return err
	}

	if s.workers != nil {
		s.workers.Run(ctx)
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info().Msg("Launching HTTP server")
		serveErr <- s.httpServer.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		s.Shutdown()
		err = <-serveErr
	case err = <-serveErr:
		// the listener failed on its own; make sure workers stop too
		stop()
	}

	if err != nil {
		return err
	}
	s.logger.Info().Msg("server Shutdown gracefully")

	return nil
}

func (s *server) Shutdown() {
	if s.httpServer != nil {
		s.httpServer.Shutdown()
	}
}
