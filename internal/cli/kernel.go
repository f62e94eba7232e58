package cli

import (
	"fmt"

	"github.com/MKhiriev/go-app-kernel/internal/app"
	"github.com/MKhiriev/go-app-kernel/internal/callback"
	"github.com/MKhiriev/go-app-kernel/internal/codec"
	"github.com/MKhiriev/go-app-kernel/internal/components"
	"github.com/MKhiriev/go-app-kernel/internal/config"
	"github.com/MKhiriev/go-app-kernel/internal/crypto"
	"github.com/MKhiriev/go-app-kernel/internal/loader"
	"github.com/MKhiriev/go-app-kernel/internal/logger"
	"github.com/MKhiriev/go-app-kernel/internal/merger"
	"github.com/MKhiriev/go-app-kernel/internal/registry"
	"github.com/MKhiriev/go-app-kernel/internal/welcome"
)

// secretSalt salts the key derived from the launch secret. Sealed
// parameters only need to open within the same deployment.
const secretSalt = "appkernel/sealed-parameters"

// kernel is everything a subcommand needs, built once per invocation.
type kernel struct {
	cfg     *config.StructuredConfig
	source  *loader.Source
	catalog *registry.Catalog
	boot    *app.Bootstrapper
	logger  *logger.Logger
}

// CatalogHook lets embedding programs register their own components next
// to the built-in ones.
type CatalogHook func(catalog *registry.Catalog, log *logger.Logger)

func newKernel(cfg *config.StructuredConfig, base *logger.Logger, hooks ...CatalogHook) (*kernel, error) {
	log, err := base.WithLevel(cfg.App.LogLevel)
	if err != nil {
		return nil, err
	}

	source, err := loader.NewSource(cfg.App.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", cfg.App.ConfigFile, err)
	}

	catalog := registry.NewCatalog()
	components.Register(catalog, log)
	catalog.Register(welcome.Class, welcome.New)
	for _, hook := range hooks {
		hook(catalog, log)
	}
	// applications without a registered class get the welcome page,
	// whatever application_name the current configuration carries
	catalog.SetFallback(callback.ApplicationComponent, welcome.Class)

	decoder, err := newDecoder(cfg.App.Secret)
	if err != nil {
		return nil, err
	}

	boot := app.NewBootstrapper(catalog,
		app.WithLogger(log),
		app.WithMerger(merger.New(
			merger.WithBasePath(cfg.App.BasePath),
			merger.WithDecoder(decoder),
		)),
	)

	return &kernel{
		cfg:     cfg,
		source:  source,
		catalog: catalog,
		boot:    boot,
		logger:  log,
	}, nil
}

// newDecoder returns the parameter decoder: base64 always, sealed values
// as well when a secret is configured.
func newDecoder(secret string) (codec.Decoder, error) {
	if secret == "" {
		return codec.NewBase64(), nil
	}

	enc, err := crypto.NewEncryption(secret, []byte(secretSalt))
	if err != nil {
		return nil, fmt.Errorf("derive parameter key: %w", err)
	}
	return codec.Chain{crypto.NewSealedDecoder(enc), codec.NewBase64()}, nil
}
