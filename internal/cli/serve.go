package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-app-kernel/internal/handler"
	"github.com/MKhiriev/go-app-kernel/internal/server"
	"github.com/MKhiriev/go-app-kernel/internal/workers"
)

var errNothingToWatch = errors.New("watching needs a configuration file")

// NewServeCommand starts the HTTP boundary. With --watch the configuration
// file is reloaded on change and picked up by the next request.
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the application over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			k, err := getKernel(cmd)
			if err != nil {
				return err
			}

			handlers, err := handler.NewHandlers(k.boot, k.source, k.cfg.Server, rt.opts.Build.String(), k.logger)
			if err != nil {
				return err
			}

			ws, err := k.workers()
			if err != nil {
				return err
			}

			srv, err := server.NewServer(handlers, k.cfg.Server, ws, k.logger)
			if err != nil {
				return err
			}

			return srv.RunServer(cmd.Context())
		},
	}
}

// workers returns the background workers enabled by the launch settings.
func (k *kernel) workers() (*workers.Workers, error) {
	if !k.cfg.Workers.Watch {
		return workers.NewWorkers(), nil
	}
	if k.source.Path() == "" {
		return nil, errNothingToWatch
	}

	watcher, err := workers.NewConfigWatcher(k.source, k.cfg.Workers.WatchDebounce, k.logger)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", k.source.Path(), err)
	}
	return workers.NewWorkers(watcher), nil
}
