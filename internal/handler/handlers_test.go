package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-app-kernel/internal/app"
	"github.com/MKhiriev/go-app-kernel/internal/config"
	"github.com/MKhiriev/go-app-kernel/internal/loader"
	"github.com/MKhiriev/go-app-kernel/internal/logger"
	"github.com/MKhiriev/go-app-kernel/internal/registry"
	"github.com/MKhiriev/go-app-kernel/internal/tree"
)

func newTestBootstrapper() *app.Bootstrapper {
	return app.NewBootstrapper(registry.NewCatalog())
}

func TestNewHandlers_HTTP(t *testing.T) {
	cfg := config.Server{
		HTTPAddress:    "localhost:8080",
		RequestTimeout: time.Second,
	}

	h, err := NewHandlers(newTestBootstrapper(), loader.Static(tree.Map{}), cfg, "dev", logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, h)
	assert.NotNil(t, h.HTTP)
	assert.NotNil(t, h.HTTP.Init())
}

func TestNewHandlers_NoAddress(t *testing.T) {
	h, err := NewHandlers(newTestBootstrapper(), loader.Static(tree.Map{}), config.Server{}, "dev", logger.Nop())

	assert.ErrorIs(t, err, errNoHandlersAreCreated)
	assert.Nil(t, h)
}
