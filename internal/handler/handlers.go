package handler

import (
	"github.com/MKhiriev/go-app-kernel/internal/app"
	"github.com/MKhiriev/go-app-kernel/internal/config"
	"github.com/MKhiriev/go-app-kernel/internal/handler/http"
	"github.com/MKhiriev/go-app-kernel/internal/logger"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers creates the transport handlers enabled by cfg. Each request
// is bootstrapped by boot from the tree currently held by source.
func NewHandlers(boot *app.Bootstrapper, source http.ConfigSource, cfg config.Server, version string, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(boot, source, cfg.RequestTimeout, version, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
