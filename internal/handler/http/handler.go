package http

import (
	"time"

	"github.com/MKhiriev/go-app-kernel/internal/app"
	"github.com/MKhiriev/go-app-kernel/internal/logger"
	"github.com/MKhiriev/go-app-kernel/internal/tree"
	"github.com/MKhiriev/go-app-kernel/internal/utils"
)

// ConfigSource supplies the base user configuration for each request.
// Implementations must return a private copy.
type ConfigSource interface {
	Snapshot() tree.Map
}

type Handler struct {
	boot   *app.Bootstrapper
	source ConfigSource
	ids    *utils.UUIDGenerator

	requestTimeout time.Duration
	version        string

	logger *logger.Logger
}

func NewHandler(boot *app.Bootstrapper, source ConfigSource, requestTimeout time.Duration, version string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		boot:           boot,
		source:         source,
		ids:            utils.NewUUIDGenerator(),
		requestTimeout: requestTimeout,
		version:        version,
		logger:         logger,
	}
}
